package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/model"
	"github.com/printcraft/printcraft-api/internal/repository"
)

var ErrCannotChangeSuperAdmin = errors.New("superadmin accounts cannot be modified")

type AdminService struct {
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	projectRepo repository.ProjectRepository
	authSvc     *AuthService
}

func NewAdminService(userRepo repository.UserRepository, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, projectRepo repository.ProjectRepository, authSvc *AuthService) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		projectRepo: projectRepo,
		authSvc:     authSvc,
	}
}

func (s *AdminService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	orders, revenue, err := s.orderRepo.CountAndRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	top, err := s.productRepo.TopOrdered(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	topResp := make([]dto.TopProductResponse, 0, len(top))
	for _, t := range top {
		topResp = append(topResp, dto.TopProductResponse{ProductID: t.ProductID, Name: t.Name, Units: t.Units})
	}

	breakdown, err := s.projectRepo.ComplexityBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("project breakdown: %w", err)
	}

	return &dto.AdminStatsResponse{
		Users:      users,
		Orders:     orders,
		Revenue:    revenue,
		TopProduct: topResp,
		Projects:   breakdown,
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int) ([]dto.UserResponse, int, error) {
	offset := (page - 1) * limit
	users, total, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	return items, total, nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsSuperAdmin() {
		return ErrCannotChangeSuperAdmin
	}
	return s.userRepo.UpdateRole(ctx, id, role)
}

func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsSuperAdmin() {
		return ErrCannotChangeSuperAdmin
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *AdminService) SetOrderTracking(ctx context.Context, orderID uuid.UUID, tracking string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.Status == model.OrderStatusCancelled {
		return ErrOrderNotPending
	}
	if err := s.orderRepo.SetTracking(ctx, orderID, tracking); err != nil {
		return fmt.Errorf("set tracking: %w", err)
	}
	return nil
}

// Impersonate mints a token carrying the target user's identity and role.
// Superadmin only; the gate lives in the route middleware.
func (s *AdminService) Impersonate(ctx context.Context, targetID uuid.UUID) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	token, err := s.authSvc.TokenFor(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}
