package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadContinuation returns the stored token of account, or "" when there is none.
func (s *Store) LoadContinuation(ctx context.Context, account string) (string, error) {
	var c Continuation
	err := s.db.WithContext(ctx).Where("account = ?", account).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load continuation for %s: %w", account, err)
	}
	return c.Token, nil
}

// SaveContinuation stores token for account. An empty token removes the stored
// one so the next fetch starts from the head of the list.
func (s *Store) SaveContinuation(ctx context.Context, account, token string) error {
	db := s.db.WithContext(ctx)

	if token == "" {
		if err := db.Where("account = ?", account).Delete(&Continuation{}).Error; err != nil {
			return fmt.Errorf("failed to clear continuation for %s: %w", account, err)
		}
		return nil
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&Continuation{Account: account, Token: token}).Error
	if err != nil {
		return fmt.Errorf("failed to save continuation for %s: %w", account, err)
	}
	return nil
}
