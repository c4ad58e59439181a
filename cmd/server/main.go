package main

import (
	bookinghandler "skybook/internal/bookings/handler"
	bookingrepository "skybook/internal/bookings/repository"
	bookingservice "skybook/internal/bookings/service"
	bookingvalidator "skybook/internal/bookings/validator"
	customerhandler "skybook/internal/customers/handler"
	customerrepository "skybook/internal/customers/repository"
	customerservice "skybook/internal/customers/service"
	customervalidator "skybook/internal/customers/validator"
	flighthandler "skybook/internal/flights/handler"
	flightrepository "skybook/internal/flights/repository"
	flightservice "skybook/internal/flights/service"
	flightvalidator "skybook/internal/flights/validator"
	guestbookinghandler "skybook/internal/guestbooking/handler"
	guestbookingservice "skybook/internal/guestbooking/service"
	"skybook/pkg/app"
	"skybook/pkg/config"
	dbmongo "skybook/pkg/db/mongo"
	"skybook/pkg/kafka"
)

const ServiceName = "skybook-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	txManager := dbmongo.NewTransactionManager(cfg.Client.Mongo)

	customerRepo := customerrepository.NewMongoCustomerRepository(cfg)
	customerValidator, err := customervalidator.NewCustomerValidator(cfg.Log, customerRepo)
	if err != nil {
		cfg.Log.Fatal("Failed to build customer validator", "error", err)
	}
	customerSvc := customerservice.NewCustomerService(cfg.Log, customerRepo, customerValidator, producer)

	flightRepo := flightrepository.NewMongoFlightRepository(cfg)
	flightValidator, err := flightvalidator.NewFlightValidator(cfg.Log, flightRepo)
	if err != nil {
		cfg.Log.Fatal("Failed to build flight validator", "error", err)
	}

	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	bookingValidator, err := bookingvalidator.NewBookingValidator(cfg.Log, bookingRepo)
	if err != nil {
		cfg.Log.Fatal("Failed to build booking validator", "error", err)
	}
	bookingSvc := bookingservice.NewBookingService(cfg.Log, bookingRepo, bookingValidator, customerRepo, flightRepo, producer)

	flightSvc := flightservice.NewFlightService(cfg.Log, flightRepo, flightValidator, bookingRepo, txManager, producer)

	// The coordinator gets producer-less service instances so nothing is
	// published for writes its transaction later rolls back. It publishes
	// its own committed event instead.
	quietCustomerSvc := customerservice.NewCustomerService(cfg.Log, customerRepo, customerValidator, nil)
	quietBookingSvc := bookingservice.NewBookingService(cfg.Log, bookingRepo, bookingValidator, customerRepo, flightRepo, nil)
	guestBookingSvc := guestbookingservice.NewGuestBookingService(cfg.Log, quietCustomerSvc, quietBookingSvc, txManager, producer)

	application := app.NewApplication(cfg)
	application.SetApp(
		customerhandler.NewCustomerHandler(customerSvc, cfg.Log),
		flighthandler.NewFlightHandler(flightSvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		guestbookinghandler.NewGuestBookingHandler(guestBookingSvc, cfg.Log),
	)
	application.Run()
}
