package cmd

import (
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	pricingConfig services.PricingConfig
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	taxRate, err := decimal.NewFromString(config.TaxRatePercent)
	if err != nil {
		return CompositionRoot{}, err
	}
	shippingFee, err := decimal.NewFromString(config.ShippingFee)
	if err != nil {
		return CompositionRoot{}, err
	}

	pricingConfig := services.PricingConfig{
		TaxRatePercent: taxRate,
		ShippingFee:    shippingFee,
	}
	if err = pricingConfig.Validate(); err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricingConfig: pricingConfig,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, services.NewPricingEngine(), c.pricingConfig)
}

func (c *CompositionRoot) CreateSetStatusCommandHandler() commands.SetStatusCommandHandler {
	return commands.NewSetStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRequestCancellationCommandHandler() commands.RequestCancellationCommandHandler {
	return commands.NewRequestCancellationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDecideCancellationCommandHandler() commands.DecideCancellationCommandHandler {
	return commands.NewDecideCancellationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordHubArrivalCommandHandler() commands.RecordHubArrivalCommandHandler {
	return commands.NewRecordHubArrivalCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordAttemptCommandHandler() commands.RecordAttemptCommandHandler {
	return commands.NewRecordAttemptCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordDeliveryCommandHandler() commands.RecordDeliveryCommandHandler {
	return commands.NewRecordDeliveryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddMessageCommandHandler() commands.AddMessageCommandHandler {
	return commands.NewAddMessageCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePushLocationCommandHandler() commands.PushLocationCommandHandler {
	return commands.NewPushLocationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateCouponCommandHandler() commands.CreateCouponCommandHandler {
	return commands.NewCreateCouponCommandHandler(c.couponUoWFactory())
}

func (c *CompositionRoot) CreateDeactivateExpiredCouponsCommandHandler() commands.DeactivateExpiredCouponsCommandHandler {
	return commands.NewDeactivateExpiredCouponsCommandHandler(c.couponUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListMessagesQueryHandler() queries.ListMessagesQueryHandler {
	return queries.NewListMessagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateLatestLocationQueryHandler() queries.LatestLocationQueryHandler {
	return queries.NewLatestLocationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateApplyCouponQueryHandler() queries.ApplyCouponQueryHandler {
	return queries.NewApplyCouponQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) couponUoWFactory() commands.CouponUoWFactory {
	return FuncCouponUoWFactory(func() commands.CouponUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCouponUoWFactory func() commands.CouponUoW

func (f FuncCouponUoWFactory) Create() commands.CouponUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
