package services

import (
	"context"
	"hppgate/entity"
)

type Database interface {
	WriteLogMessage(data Data) error
	SavePaymentResult(ctx context.Context, result *entity.PaymentResult) error
}

type Data interface {
	DataType() string
}

type ResultStore interface {
	GetPaymentResults(ctx context.Context, reference string) ([]*entity.PaymentResult, error)
}
