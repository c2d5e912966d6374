package services

import (
	"context"
	"hppgate/entity"
)

type Gateway interface {
	HPPURL(request *entity.HPPRequest) (string, error)
	Modify(ctx context.Context, action entity.ModificationAction, request *entity.ModificationRequest) (entity.GatewayResult, error)
	ListRecurringDetails(ctx context.Context, request *entity.RecurringQueryRequest) (entity.GatewayResult, error)
	SubmitRecurringPayment(ctx context.Context, request *entity.RecurringPaymentRequest) (entity.GatewayResult, error)
	LastError() string
}
