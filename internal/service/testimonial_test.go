package service_test

import (
	"context"
	"testing"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/lib/logger"
	"github.com/linemk/sattvik-shop/internal/service"
	"github.com/linemk/sattvik-shop/internal/storage"
	"github.com/linemk/sattvik-shop/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID = int64(1)

func newTestimonialService(t *testing.T) (service.TestimonialService, *fakeTestimonialRepo) {
	t.Helper()
	repo := newFakeTestimonialRepo()
	roles := newFakeRoleRepo()
	require.NoError(t, roles.GrantRole(context.Background(), adminID, models.RoleAdmin))
	return service.NewTestimonialService(logger.Discard(), repo, roles), repo
}

func TestTestimonial_SubmitNotPublicUntilApproved(t *testing.T) {
	svc, _ := newTestimonialService(t)
	ctx := context.Background()

	title := "  "
	created, err := svc.Submit(ctx, service.SubmitTestimonialRequest{
		Name: " Asha ", Title: &title, Comment: "Crunchy and fresh", Rating: 5,
	})
	require.NoError(t, err)
	assert.False(t, created.Approved)
	assert.Equal(t, "Asha", created.Name)
	assert.Nil(t, created.Title, "blank title is dropped")

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	require.NoError(t, svc.Approve(ctx, adminID, created.ID))
	public, err = svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func TestTestimonial_SubmitValidation(t *testing.T) {
	svc, _ := newTestimonialService(t)

	cases := []service.SubmitTestimonialRequest{
		{Name: "", Comment: "ok", Rating: 5},
		{Name: "Asha", Comment: "", Rating: 5},
		{Name: "Asha", Comment: "ok", Rating: 0},
		{Name: "Asha", Comment: "ok", Rating: 6},
	}
	for _, req := range cases {
		_, err := svc.Submit(context.Background(), req)
		var fields validation.FieldErrors
		assert.ErrorAs(t, err, &fields, "%+v", req)
	}
}

func TestTestimonial_PublicLimit(t *testing.T) {
	svc, repo := newTestimonialService(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		created, err := svc.Submit(ctx, service.SubmitTestimonialRequest{Name: "A", Comment: "c", Rating: 4})
		require.NoError(t, err)
		require.NoError(t, repo.Approve(ctx, created.ID))
	}
	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, public, service.PublicTestimonialsLimit)
}

func TestTestimonial_AdminOnly(t *testing.T) {
	svc, _ := newTestimonialService(t)
	ctx := context.Background()
	created, err := svc.Submit(ctx, service.SubmitTestimonialRequest{Name: "A", Comment: "c", Rating: 3})
	require.NoError(t, err)

	const customerID = int64(42)
	assert.ErrorIs(t, svc.Approve(ctx, customerID, created.ID), service.ErrForbidden)
	assert.ErrorIs(t, svc.Reject(ctx, customerID, created.ID), service.ErrForbidden)
	_, err = svc.ListAll(ctx, customerID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	all, err := svc.ListAll(ctx, adminID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTestimonial_Reject(t *testing.T) {
	svc, repo := newTestimonialService(t)
	ctx := context.Background()
	created, err := svc.Submit(ctx, service.SubmitTestimonialRequest{Name: "A", Comment: "c", Rating: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, adminID, created.ID))
	assert.Empty(t, repo.items)

	assert.ErrorIs(t, svc.Reject(ctx, adminID, created.ID), storage.ErrTestimonialNotFound)
	assert.ErrorIs(t, svc.Approve(ctx, adminID, "not-a-uuid"), storage.ErrTestimonialNotFound)
}
