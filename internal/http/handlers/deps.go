package handlers

import (
	"nexusops/internal/config"
	"nexusops/internal/repos"
	"nexusops/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	StatusHandler       *StatusHandler
	SalesHandler        *SalesHandler
	NotificationHandler *NotificationHandler
	LabelHandler        *LabelHandler
	PlanHandler         *PlanHandler
	StorageHandler      *StorageHandler
	PickingHandler      *PickingHandler
	ProductHandler      *ProductHandler
	ReportHandler       *ReportHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	statusRepo := repos.NewStatusRepo(db)
	productRepo := repos.NewProductRepo(db)
	shipmentRepo := repos.NewShipmentRepo(db)
	notifRepo := repos.NewNotificationRepo(db)
	locationRepo := repos.NewLocationRepo(db)
	planRepo := repos.NewPlanRepo(db)
	activityRepo := repos.NewActivityRepo(db)
	pickingRepo := repos.NewPickingRepo(db)

	lifecycleSvc := services.NewLifecycleService(productRepo)
	notifSvc := services.NewNotificationService(notifRepo)
	intakeSvc := services.NewIntakeService(planRepo, notifSvc)
	storageSvc := services.NewStorageService(productRepo, locationRepo)
	pickingSvc := services.NewPickingService(pickingRepo, productRepo, locationRepo)
	reportSvc := services.NewReportService(productRepo, pickingRepo, activityRepo, cfg.SnapshotDir)

	return &Deps{
		StatusHandler:       &StatusHandler{Statuses: statusRepo},
		SalesHandler:        &SalesHandler{Lifecycle: lifecycleSvc},
		NotificationHandler: &NotificationHandler{Notifs: notifSvc},
		LabelHandler:        &LabelHandler{LabelsDir: cfg.LabelsDir},
		PlanHandler:         &PlanHandler{Intake: intakeSvc},
		StorageHandler:      &StorageHandler{Storage: storageSvc},
		PickingHandler:      &PickingHandler{Picking: pickingSvc},
		ProductHandler:      &ProductHandler{Products: productRepo, Shipments: shipmentRepo, Activities: activityRepo},
		ReportHandler:       &ReportHandler{Reports: reportSvc},
	}
}
