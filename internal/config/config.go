package config

import (
	"log"
	"os"
)

type Config struct {
	Port        string
	DBDSN       string
	LabelsDir   string
	SnapshotDir string
	LogFile     string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "nexusops.db"
	} // sqlite file in project root
	labels := os.Getenv("LABELS_DIR")
	if labels == "" {
		labels = "./data/labels"
	}
	snapshots := os.Getenv("SNAPSHOT_DIR")
	if snapshots == "" {
		// Canned dashboard/analytics payloads served when the DB path fails.
		snapshots = "./web/snapshots"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./nexusops.log"
	}

	cfg := Config{Port: port, DBDSN: dsn, LabelsDir: labels, SnapshotDir: snapshots, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s LABELS_DIR=%s SNAPSHOT_DIR=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.LabelsDir, cfg.SnapshotDir, cfg.LogFile)
	return cfg
}
