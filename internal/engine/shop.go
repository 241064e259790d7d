package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"levelup/internal/storage"
)

// AdjustCoins applies a coin delta to the totals. The resulting
// balance must stay non-negative.
func (s *Service) AdjustCoins(ctx context.Context, delta int) (*storage.Stats, error) {
	st, err := s.getStats(ctx)
	if err != nil {
		return nil, err
	}
	if st.Coins+delta < 0 {
		return nil, fmt.Errorf("%w: balance %d, delta %d", ErrInsufficientCoins, st.Coins, delta)
	}
	st.Coins += delta
	if err := s.stats.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Redeem debits coins and appends a pending redemption worth
// coins / conversion-rate currency units. The amount must meet the
// minimum and divide evenly by the conversion rate.
func (s *Service) Redeem(ctx context.Context, coins int) (*storage.Redemption, error) {
	if coins < s.minRedemption {
		return nil, RedemptionError{Coins: coins, Reason: fmt.Sprintf("minimum redemption is %d coins", s.minRedemption)}
	}
	if coins%s.conversionRate != 0 {
		return nil, RedemptionError{Coins: coins, Reason: fmt.Sprintf("amount must be a multiple of %d coins", s.conversionRate)}
	}

	if _, err := s.AdjustCoins(ctx, -coins); err != nil {
		return nil, err
	}

	red := storage.Redemption{
		ID:            uuid.NewString(),
		UserID:        s.userID,
		CoinsRedeemed: coins,
		Amount:        coins / s.conversionRate,
		Status:        string(RedemptionPending),
		CreatedAt:     s.clock.Now(),
	}
	if err := s.redemptions.Insert(ctx, red); err != nil {
		return nil, err
	}
	return &red, nil
}

func (s *Service) Redemptions(ctx context.Context) ([]storage.Redemption, error) {
	return s.redemptions.ListByUser(ctx, s.userID)
}
