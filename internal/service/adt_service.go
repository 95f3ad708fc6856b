package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/rbac"
	"github.com/bframe197/MilMedMatch/internal/store"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

type ADTService interface {
	// Submit files a new training request. The status is always forced to
	// pending and every administrator receives one info notification.
	Submit(ctx context.Context, actor model.User, input dto.SubmitADTInput) (model.ADTRequest, error)

	// ListFor returns the actor's own requests; administrators see all.
	ListFor(actor model.User) []model.ADTRequest

	// Review transitions a pending request to approved or denied. Reviewed
	// requests are terminal; a denial requires a non-empty reason. The
	// owning user receives one notification describing the outcome.
	Review(ctx context.Context, actor model.User, id uuid.UUID, input dto.ReviewADTInput) (model.ADTRequest, error)
}

type adtService struct {
	store         *store.Store
	notifications NotificationService
	now           func() time.Time
}

func NewADTService(s *store.Store, notifications NotificationService) ADTService {
	return &adtService{store: s, notifications: notifications, now: time.Now}
}

func (s *adtService) Submit(ctx context.Context, actor model.User, input dto.SubmitADTInput) (model.ADTRequest, error) {
	if !rbac.ForRole(actor.Role).SubmitADT {
		return model.ADTRequest{}, apperror.ErrForbidden
	}

	req := model.ADTRequest{
		ID:          uuid.New(),
		UserID:      actor.ID,
		Username:    actor.Username,
		Status:      model.ADTPending,
		SubmittedAt: s.now(),

		FullName:         input.FullName,
		SSNLast4:         input.SSNLast4,
		FacilityName:     input.FacilityName,
		RemainingADTDays: input.RemainingADTDays,
		AdvancePayment:   input.AdvancePayment,
		Email:            input.Email,
		Married:          input.Married,
		Dependents:       input.Dependents,
		DependentNames:   input.DependentNames,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		TravelMode:       input.TravelMode,
		RentalCar:        input.RentalCar,
		Phone:            input.Phone,
		AltPhone:         input.AltPhone,
		HomeOfRecord:     input.HomeOfRecord,
		CurrentAddress:   input.CurrentAddress,
		Signature:        input.Signature,
		Date:             input.Date,
	}

	if err := s.store.AppendRequest(req); err != nil {
		return model.ADTRequest{}, err
	}

	s.notifications.Notify(ctx,
		func(u model.User) bool { return u.Role == model.RoleAdministrator },
		fmt.Sprintf("New ADT Request submitted by %s (%s).", req.Username, req.FullName),
		model.NotificationInfo,
	)

	return req, nil
}

func (s *adtService) ListFor(actor model.User) []model.ADTRequest {
	all := s.store.Requests()
	if rbac.ForRole(actor.Role).ReviewADT {
		return all
	}
	own := []model.ADTRequest{}
	for _, r := range all {
		if r.UserID == actor.ID {
			own = append(own, r)
		}
	}
	return own
}

func (s *adtService) Review(ctx context.Context, actor model.User, id uuid.UUID, input dto.ReviewADTInput) (model.ADTRequest, error) {
	if !rbac.ForRole(actor.Role).ReviewADT {
		return model.ADTRequest{}, apperror.ErrForbidden
	}

	req, err := s.store.FindRequest(id)
	if err != nil {
		return model.ADTRequest{}, err
	}
	if req.Status != model.ADTPending {
		return model.ADTRequest{}, apperror.New(409, "request has already been reviewed", apperror.ErrConflict)
	}

	decision := model.ADTStatus(input.Decision)
	reason := strings.TrimSpace(input.Reason)
	if decision == model.ADTDenied && reason == "" {
		return model.ADTRequest{}, apperror.Invalid("a denial requires a reason")
	}

	req.Status = decision
	if decision == model.ADTDenied {
		req.DenialReason = reason
	}
	if err := s.store.ReplaceRequest(req); err != nil {
		return model.ADTRequest{}, err
	}

	msg := fmt.Sprintf("Your ADT Request for %s has been %s.", req.FacilityName, decision)
	typ := model.NotificationSuccess
	if decision == model.ADTDenied {
		msg = fmt.Sprintf("Your ADT Request for %s has been denied: %s", req.FacilityName, reason)
		typ = model.NotificationError
	}
	s.notifications.Notify(ctx, func(u model.User) bool { return u.ID == req.UserID }, msg, typ)

	return req, nil
}
