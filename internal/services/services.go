package services

import (
	"github.com/sahyog/freightbook-api/internal/jobs"
	"github.com/sahyog/freightbook-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Record     *RecordService
	Balance    *BalanceService
	Allocation *AllocationService
	LumpSum    *LumpSumService
	Export     *ExportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker) *Services {
	balanceSvc := NewBalanceService(repos.Record)

	return &Services{
		Record:     NewRecordService(repos.Record, repos.SavedOption, worker),
		Balance:    balanceSvc,
		Allocation: NewAllocationService(repos.Record, repos.LumpSum, repos.Allocation),
		LumpSum:    NewLumpSumService(repos.LumpSum, repos.Allocation),
		Export:     NewExportService(repos.Record),
	}
}
