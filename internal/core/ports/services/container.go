package services

// ServiceContainer bundles the service facades handed to the HTTP layer at
// startup.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Voucher   VoucherSvcFacade
	Product   ProductSvcFacade
	Inventory InventorySvcFacade
	Reporting ReportingSvcFacade
}
