package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/coupon_repo"
	"marketplace_backend/internal/service/pricing"
)

func (s *serv) ApplyCoupon(ctx context.Context, userID int, code string) (*model.Cart, error) {
	coupon, err := s.couponRepo.GetCouponByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, coupon_repo.ErrCouponNotFound) {
			return nil, ErrCouponInvalid
		}
		return nil, err
	}

	if !pricing.CouponLive(coupon, time.Now()) {
		return nil, ErrCouponInvalid
	}

	if err := s.cartRepo.SetAppliedCouponID(ctx, userID, coupon.ID); err != nil {
		return nil, err
	}

	return s.buildCart(ctx, userID)
}
