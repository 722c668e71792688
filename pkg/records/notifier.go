package records

import (
	"context"

	"go.uber.org/zap"

	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/models"
)

const AlertSubject = "Patient Alert from DiaLog"

// Notifier delivers a doctor alert. Mail delivery lives outside this
// service; LogNotifier only records what would be sent.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n models.Notification) error {
	common.GetCategoryLogger(common.LoggerNameRecordsCore, common.LoggerCategoryNotify).Info("Doctor notified",
		zap.String("userId", n.UserID),
		zap.String("to", n.To),
		zap.String("subject", n.Subject),
		zap.String("body", n.Body),
	)
	return nil
}
