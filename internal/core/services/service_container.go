package services

import (
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
)

// NewServiceContainer wires the repositories into the service facades handed
// to the HTTP layer.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Voucher:   NewVoucherService(repos.VoucherRepo, repos.ProductRepo, accountSvc),
		Product:   NewProductService(repos.ProductRepo),
		Inventory: NewInventoryService(repos.ProductRepo),
		Reporting: NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.ProductRepo),
	}
}
