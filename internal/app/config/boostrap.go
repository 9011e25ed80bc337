package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// StoreClose if set will be called during Shutdown to release the key-value store
	StoreClose func() error
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.StoreClose != nil {
		err := b.StoreClose()
		if err != nil {
			return err
		}
		log.Printf("Successfully closing %s store", b.DriverConfig.Store.Driver)
	}

	err := b.Logger.Sync()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Logger")

	return nil
}
