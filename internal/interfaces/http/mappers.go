package http

import (
	"github.com/jhoicas/DailyBooks-api/internal/application/attendance"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
	"github.com/jhoicas/DailyBooks-api/internal/application/tenant"
	"github.com/jhoicas/DailyBooks-api/internal/application/workspace"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

func toUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Phone:      u.Phone,
		Photo:      u.Photo,
		HourlyRate: u.HourlyRate,
		ShopID:     u.ShopID,
		Active:     u.Active,
		IsOnline:   u.IsOnline,
	}
}

// toShopResponse incluye los datos del dueño solo para administradores globales.
func toShopResponse(s entity.Shop, withOwner bool) dto.ShopResponse {
	out := dto.ShopResponse{
		ID:          s.ID,
		Name:        s.Name,
		Location:    s.Location,
		Address:     s.Address,
		Telephone:   s.Telephone,
		BillShowTax: s.BillShowTax,
	}
	if !s.CreatedAt.IsZero() {
		t := s.CreatedAt
		out.CreatedAt = &t
	}
	if withOwner {
		out.OwnerEmail = s.OwnerEmail
		out.OwnerPassword = s.OwnerPassword
		out.OwnerProfileID = s.OwnerProfileID
	}
	return out
}

func toShopResponses(shops []entity.Shop, withOwner bool) []dto.ShopResponse {
	out := make([]dto.ShopResponse, 0, len(shops))
	for _, s := range shops {
		out = append(out, toShopResponse(s, withOwner))
	}
	return out
}

func toSalesmanResponse(s entity.Salesman) dto.SalesmanResponse {
	return dto.SalesmanResponse{
		UserResponse:        toUserResponse(s.User),
		Pin:                 s.Pin,
		SalesmanNumber:      s.SalesmanNumber,
		CanEditTransactions: s.CanEditTransactions,
		CanBulkEdit:         s.CanBulkEdit,
		Persisted:           s.Persisted,
	}
}

func toSalesmanResponses(list []entity.Salesman) []dto.SalesmanResponse {
	out := make([]dto.SalesmanResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSalesmanResponse(s))
	}
	return out
}

func toAttendanceResponse(l entity.AttendanceLog) dto.AttendanceLogResponse {
	return dto.AttendanceLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		UserName:  l.UserName,
		Type:      l.Type,
		ShopID:    l.ShopID,
		Timestamp: l.Timestamp,
		Note:      l.Note,
	}
}

func toAttendanceResponses(logs []entity.AttendanceLog) []dto.AttendanceLogResponse {
	out := make([]dto.AttendanceLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toAttendanceResponse(l))
	}
	return out
}

func toPunchResponse(r *attendance.PunchResult) dto.PunchResponse {
	out := dto.PunchResponse{
		Log:      toAttendanceResponse(r.Log),
		Online:   r.Online,
		Warnings: r.Warnings,
	}
	if r.Shift != nil && r.Payroll != nil {
		out.Payroll = &dto.PayrollResponse{
			TransactionID: r.Payroll.ID,
			Hours:         r.Shift.Hours,
			Amount:        r.Payroll.Amount,
		}
	}
	return out
}

func toSettingsDTO(s entity.Settings) dto.SettingsDTO {
	return dto.SettingsDTO{
		SlowMovingDays:  s.SlowMovingDays,
		AutoLockEnabled: s.AutoLockEnabled,
		AutoLockTimeout: s.AutoLockTimeout,
	}
}

func toSessionResponse(snap workspace.Snapshot) dto.SessionResponse {
	out := dto.SessionResponse{
		Role:         snap.Role,
		ActiveShopID: snap.ActiveShopID,
		Shops:        toShopResponses(snap.Shops, snap.IsSuperAdmin),
		Settings:     toSettingsDTO(snap.Settings),
		IsSuperAdmin: snap.IsSuperAdmin,
		IsAdminLike:  snap.IsAdminLike,
		BillShowTax:  snap.BillShowTax,
	}
	if snap.User != nil {
		u := toUserResponse(*snap.User)
		out.User = &u
	}
	if snap.Session != nil {
		exp := snap.Session.ExpiresAt
		out.ExpiresAt = &exp
	}
	return out
}

func toCreateShopResponse(r *tenant.CreateShopResult) dto.CreateShopResponse {
	return dto.CreateShopResponse{
		Shop:  toShopResponse(r.Shop, true),
		Admin: toUserResponse(r.Admin),
		Credentials: dto.OwnerCredentialsDTO{
			Email:    r.Credentials.Email,
			Password: r.Credentials.Password,
			Pin:      r.Credentials.Pin,
		},
	}
}

func toDeleteShopResponse(r *tenant.CascadeReport, activeShopID string) dto.DeleteShopResponse {
	steps := make([]dto.CascadeStepDTO, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, dto.CascadeStepDTO{Table: s.Table, Deleted: s.Deleted, Error: s.Error})
	}
	return dto.DeleteShopResponse{
		ShopID:       r.ShopID,
		ShopDeleted:  r.ShopDeleted,
		Partial:      r.Partial(),
		Steps:        steps,
		ActiveShopID: activeShopID,
	}
}
