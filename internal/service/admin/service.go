package admin

import (
	"context"
	"errors"
	"strings"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrBadCoupon      = errors.New("coupon percent must be between 1 and 100")
)

type serv struct {
	userRepo     repository.UserRepository
	authRepo     repository.AuthRepository
	catalogRepo  repository.CatalogRepository
	couponRepo   repository.CouponRepository
	reviewRepo   repository.ReviewRepository
	settingsRepo repository.SettingsRepository
}

func NewService(
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	catalogRepo repository.CatalogRepository,
	couponRepo repository.CouponRepository,
	reviewRepo repository.ReviewRepository,
	settingsRepo repository.SettingsRepository,
) *serv {
	return &serv{
		userRepo:     userRepo,
		authRepo:     authRepo,
		catalogRepo:  catalogRepo,
		couponRepo:   couponRepo,
		reviewRepo:   reviewRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *serv) ListUsers(ctx context.Context, role string, limit, offset int) ([]model.User, error) {
	if limit <= 0 {
		limit = 50
	}

	users, err := s.userRepo.ListUsers(ctx, role, limit, offset)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// SetUserActive - deactivation also revokes every live session so the
// account is locked out immediately, not at access-token expiry
func (s *serv) SetUserActive(ctx context.Context, userID int, active bool) error {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}

	if !active {
		return s.authRepo.DeleteSessionsByUser(ctx, userID)
	}
	return nil
}

// ApproveVendor - promotes a customer account to vendor
func (s *serv) ApproveVendor(ctx context.Context, userID int) error {
	return s.userRepo.SetRole(ctx, userID, model.RoleVendor)
}

func (s *serv) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.Slug == "" {
		category.Slug = slugify(category.Name)
	}

	id, err := s.catalogRepo.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	category.ID = id
	return category, nil
}

func (s *serv) UpdateCategory(ctx context.Context, category *model.Category) error {
	if category.Slug == "" {
		category.Slug = slugify(category.Name)
	}
	return s.catalogRepo.UpdateCategory(ctx, category)
}

func (s *serv) DeleteCategory(ctx context.Context, id int) error {
	return s.catalogRepo.DeleteCategory(ctx, id)
}

func (s *serv) CreateCoupon(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	if coupon.PercentOff < 1 || coupon.PercentOff > 100 {
		return nil, ErrBadCoupon
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))

	id, err := s.couponRepo.CreateCoupon(ctx, coupon)
	if err != nil {
		return nil, err
	}

	coupon.ID = id
	return coupon, nil
}

func (s *serv) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	return s.couponRepo.ListCoupons(ctx)
}

func (s *serv) SetCouponActive(ctx context.Context, id int, active bool) error {
	return s.couponRepo.SetCouponActive(ctx, id, active)
}

func (s *serv) ListPendingReviews(ctx context.Context) ([]model.Review, error) {
	return s.reviewRepo.ListByStatus(ctx, model.ReviewPending)
}

func (s *serv) ModerateReview(ctx context.Context, id int, approve bool) error {
	status := model.ReviewRejected
	if approve {
		status = model.ReviewApproved
	}

	ok, err := s.reviewRepo.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrReviewNotFound
	}
	return nil
}

func (s *serv) Settings(ctx context.Context) (map[string]string, error) {
	return s.settingsRepo.All(ctx)
}

func (s *serv) SetSetting(ctx context.Context, key, value string) error {
	return s.settingsRepo.Set(ctx, key, value)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
