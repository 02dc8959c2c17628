package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	getCarrierTicketsHandler "github.com/m04kA/TravelBuddy-Client/internal/api/handlers/get_carrier_tickets"
	getMyBookingsHandler "github.com/m04kA/TravelBuddy-Client/internal/api/handlers/get_my_bookings"
	getSessionStatusHandler "github.com/m04kA/TravelBuddy-Client/internal/api/handlers/get_session_status"
)

func runServe(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("serve")
	addr := flagSet.String("addr", "127.0.0.1:8090", "listen address")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	// Инициализируем handlers
	getSessionStatus := getSessionStatusHandler.NewHandler(a.accounts, a.log)
	getMyBookings := getMyBookingsHandler.NewHandler(a.lookup, a.log)
	getCarrierTickets := getCarrierTicketsHandler.NewHandler(a.lookup, a.log)

	// Настраиваем роутер
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Состояние входа клиента и администратора
	api.HandleFunc("/status", getSessionStatus.Handle).Methods(http.MethodGet)

	// Бронирования клиента по почте
	api.HandleFunc("/bookings", getMyBookings.Handle).Methods(http.MethodGet)

	// Рейсы перевозчика
	api.HandleFunc("/tickets/{kind}", getCarrierTickets.Handle).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: time.Duration(a.cfg.Backend.Timeout+5) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Starting server on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидаем сигнал завершения
	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server stopped gracefully")
	return nil
}
