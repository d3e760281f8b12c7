package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		VoucherRepo:   voucherRepo,
		ProductRepo:   productRepo,
		ReportingRepo: reportingRepo,
	}
}
