package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/atelier-api/internal/application/billing"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

var (
	_ usecase.SpecTxRunner    = (*TxRunner)(nil)
	_ usecase.TaskTxRunner    = (*TxRunner)(nil)
	_ billing.PaymentTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSpecs ejecuta fn con el repo de specs atado a la tx (mutación + rechequeo de tags).
func (r *TxRunner) RunSpecs(ctx context.Context, fn func(specs repository.SpecRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSpecRepository(tx))
	})
}

// RunTasks ejecuta fn con el repo de tareas atado a la tx (alta masiva desde una reunión).
func (r *TxRunner) RunTasks(ctx context.Context, fn func(tasks repository.TaskRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTaskRepository(tx))
	})
}

// RunPayments ejecuta fn con pagos e hitos atados a la tx (webhooks del proveedor).
func (r *TxRunner) RunPayments(ctx context.Context, fn func(
	payments repository.PaymentRepository,
	milestones repository.MilestoneRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewPaymentRepository(tx), NewMilestoneRepository(tx))
	})
}
