package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nutriplan/nutriplan/internal/application/common"
	"github.com/nutriplan/nutriplan/internal/infrastructure/repository"
	"github.com/nutriplan/nutriplan/internal/shared/db"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

var subscriptionColumns = []string{
	"id", "user_id", "plan_id", "amount", "status", "subscription_date",
	"approved_by_user_id", "approved_date", "cancelled_at", "version", "created_at", "updated_at",
}

// A failure while writing the target must roll back the cancellation of the
// prior subscription issued earlier in the same transaction.
func TestApproveSubscription_RollsBackOnFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	log := logger.NewNop()
	uc := NewApproveSubscriptionUseCase(
		repository.NewSubscriptionRepository(gdb, log),
		repository.NewUserRepository(gdb, log),
		db.NewTransactionManager(gdb),
		common.NopMetrics{},
		log,
	)

	now := time.Now()
	approvedAt := now.Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `subscriptions` WHERE .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(subscriptionColumns).
			AddRow(2, 7, 1, "19.99", "PENDING", now, nil, nil, nil, 1, now, now))
	mock.ExpectQuery("SELECT .*id.* FROM `users` WHERE .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT \\* FROM `subscriptions` WHERE .*status.* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(subscriptionColumns).
			AddRow(1, 7, 1, "9.99", "APPROVED", approvedAt, 3, approvedAt, nil, 2, approvedAt, approvedAt))
	mock.ExpectExec("UPDATE `subscriptions` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `subscriptions` SET").
		WillReturnError(errors.New("lock wait timeout exceeded"))
	mock.ExpectRollback()

	_, err = uc.Execute(context.Background(), ApproveSubscriptionCommand{SubscriptionID: 2, AdminUserID: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to approve subscription")
	assert.NoError(t, mock.ExpectationsWereMet())
}
