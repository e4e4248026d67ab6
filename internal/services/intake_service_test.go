package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusops/internal/domain"
	"nexusops/internal/repos"
	"nexusops/internal/services"
)

func seller() *domain.User {
	return &domain.User{ID: "u-seller1", Email: "seller@nexusops.test", Name: "Kimura Trading", Role: "SELLER"}
}

func intakeSvc(t *testing.T) (*services.IntakeService, *repos.PlanRepo) {
	t.Helper()
	db := opendb(t)
	planRepo := repos.NewPlanRepo(db)
	notifSvc := services.NewNotificationService(repos.NewNotificationRepo(db))
	return services.NewIntakeService(planRepo, notifSvc), planRepo
}

func TestSaveDraft_ComputesTotals(t *testing.T) {
	svc, _ := intakeSvc(t)

	plan, err := svc.SaveDraft(seller(), services.DraftInput{
		DeliveryAddress: "1-2-3 Shibuya, Tokyo",
		Products: []services.PlanLine{
			{Name: "Canon EOS R5", SKU: "CAM-010", Category: "camera", Condition: "A", PurchasePrice: 300000},
			{Name: "Leica M6", SKU: "CAM-011", Category: "camera", Condition: "B", PurchasePrice: 250000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", plan.Status)
	assert.Equal(t, 2, plan.TotalItems)
	assert.Equal(t, 550000.0, plan.TotalValue)
	// Contact email defaults to the seller's address
	assert.Equal(t, "seller@nexusops.test", plan.ContactEmail)
}

func TestSubmit_CreatesInboundProducts(t *testing.T) {
	svc, planRepo := intakeSvc(t)

	plan, err := svc.SaveDraft(seller(), services.DraftInput{
		Products: []services.PlanLine{{Name: "Nikon F3", PurchasePrice: 80000}},
	})
	require.NoError(t, err)

	submitted, ids, err := svc.Submit(seller(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "submitted", submitted.Status)
	require.Len(t, ids, 1)

	var status string
	require.NoError(t, planRepo.DB.Get(&status, `SELECT status FROM products WHERE id=?`, ids[0]))
	assert.Equal(t, domain.StatusInbound, status)

	// Re-submitting is rejected
	_, _, err = svc.Submit(seller(), plan.ID)
	assert.ErrorIs(t, err, services.ErrPlanNotDraft)
}

func TestSubmit_SurvivesNotifyFailure(t *testing.T) {
	db := opendb(t)

	// Notification store on a dead handle: Notify fails, submission must not.
	dead, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, dead.Close())

	svc := services.NewIntakeService(
		repos.NewPlanRepo(db),
		services.NewNotificationService(repos.NewNotificationRepo(dead)),
	)

	plan, err := svc.SaveDraft(seller(), services.DraftInput{
		Products: []services.PlanLine{{Name: "Nikon F3", PurchasePrice: 80000}},
	})
	require.NoError(t, err)

	submitted, ids, err := svc.Submit(seller(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "submitted", submitted.Status)
	assert.Len(t, ids, 1)
}

func TestCancel_OnlyDrafts(t *testing.T) {
	svc, _ := intakeSvc(t)

	plan, err := svc.SaveDraft(seller(), services.DraftInput{
		Products: []services.PlanLine{{Name: "Nikon F3", PurchasePrice: 80000}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(seller(), plan.ID))
	assert.ErrorIs(t, svc.Cancel(seller(), plan.ID), services.ErrPlanNotDraft)
}

func TestPlan_OwnershipEnforced(t *testing.T) {
	svc, _ := intakeSvc(t)

	plan, err := svc.SaveDraft(seller(), services.DraftInput{
		Products: []services.PlanLine{{Name: "Nikon F3", PurchasePrice: 80000}},
	})
	require.NoError(t, err)

	other := &domain.User{ID: "u-staff1", Role: "STAFF"}
	_, _, err = svc.Submit(other, plan.ID)
	assert.ErrorIs(t, err, services.ErrPlanForbidden)

	_, _, err = svc.Submit(seller(), "no-such-plan")
	assert.ErrorIs(t, err, services.ErrPlanNotFound)
}
