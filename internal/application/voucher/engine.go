package voucher

import (
	"context"
	"time"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/fuelstation/backend/internal/domain/voucher"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateVoucherCommand carries everything needed to post a voucher
type CreateVoucherCommand struct {
	VoucherType    voucher.VoucherType
	Category       voucher.Category
	SubType        voucher.SubType
	FromAccount    string
	ToAccount      string
	Amount         decimal.Decimal
	Channel        ledger.PaymentChannel
	ChannelDetail  ledger.ChannelDetail
	VoucherDate    time.Time
	ShiftID        *int
	ShiftDate      *time.Time
	Remark         string
	IdempotencyKey string
}

// UpdateVoucherCommand carries the replacement field set for an amend
type UpdateVoucherCommand struct {
	Category      voucher.Category
	SubType       voucher.SubType
	FromAccount   string
	ToAccount     string
	Amount        decimal.Decimal
	Channel       ledger.PaymentChannel
	ChannelDetail ledger.ChannelDetail
	VoucherDate   time.Time
	Remark        string
}

// Engine posts, amends and reverses vouchers. Every mutation runs as one unit
// of work over the voucher row, its linked transaction and both cached
// balances; an amend reverses the previously posted deltas before reapplying
// the new ones, so the cached balances never drift from the transaction log.
type Engine struct {
	scope       TransactionScope
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
}

// NewEngine creates a voucher engine
func NewEngine(scope TransactionScope) *Engine {
	return &Engine{
		scope:      scope,
		idemConfig: shared.DefaultIdempotencyConfig(),
	}
}

// SetIdempotencyStore enables duplicate-submission protection on Create
func (e *Engine) SetIdempotencyStore(store shared.IdempotencyStore, config shared.IdempotencyConfig) {
	e.idempotency = store
	e.idemConfig = config
}

// Create validates the command, then in one transaction appends the ledger
// transaction on the from-account, adjusts both cached balances by
// opposite-sign equal-magnitude deltas, and inserts the voucher row.
func (e *Engine) Create(ctx context.Context, cmd CreateVoucherCommand) (*voucher.Voucher, error) {
	reserved, err := e.reserveKey(ctx, cmd.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	v, err := e.create(ctx, cmd)
	if err != nil && reserved {
		// Nothing was posted, so the key must be accepted again on retry.
		e.releaseKey(ctx, cmd.IdempotencyKey)
	}
	return v, err
}

// reserveKey claims the idempotency key before any work happens, so two
// concurrent submissions with the same key cannot both post. Reports whether
// a reservation was actually taken.
func (e *Engine) reserveKey(ctx context.Context, key string) (bool, error) {
	if key == "" || e.idempotency == nil || !e.idemConfig.Enabled {
		return false, nil
	}
	fresh, err := e.idempotency.MarkProcessed(ctx, key, e.idemConfig.TTL)
	if err != nil {
		return false, err
	}
	if !fresh {
		return false, shared.NewDomainError("ALREADY_EXISTS", "A voucher with this idempotency key was already posted")
	}
	return true, nil
}

func (e *Engine) releaseKey(ctx context.Context, key string) {
	_ = e.idempotency.Release(ctx, key)
}

func (e *Engine) create(ctx context.Context, cmd CreateVoucherCommand) (*voucher.Voucher, error) {
	txn, err := ledger.NewTransaction(cmd.FromAccount, cmd.VoucherType.Direction(), cmd.Amount, cmd.Channel, cmd.ChannelDetail, cmd.VoucherDate)
	if err != nil {
		return nil, err
	}

	v, err := voucher.NewVoucher(cmd.VoucherType, cmd.Category, cmd.SubType, cmd.FromAccount, cmd.ToAccount, txn.ID, cmd.Amount, cmd.Channel, cmd.VoucherDate)
	if err != nil {
		return nil, err
	}
	v.Remark = cmd.Remark
	if cmd.ShiftID != nil && cmd.ShiftDate != nil {
		v.TagShift(*cmd.ShiftID, *cmd.ShiftDate)
	}

	err = e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := e.requireAccounts(ctx, repos, cmd.FromAccount, cmd.ToAccount); err != nil {
			return err
		}
		if err := repos.Transactions().Append(ctx, txn); err != nil {
			return err
		}
		if err := applyDeltas(ctx, repos.Accounts(), v.PostedDeltas()); err != nil {
			return err
		}
		return repos.Vouchers().Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Update amends a posted voucher with a reverse-then-reapply protocol: the
// deltas computed from the recorded state are undone, the voucher and its
// transaction are rewritten in place, and the new deltas are applied. The
// transaction keeps its original id, so ledger position is preserved only
// when the date is unchanged; a changed date re-sorts naturally.
func (e *Engine) Update(ctx context.Context, id uuid.UUID, cmd UpdateVoucherCommand) (*voucher.Voucher, error) {
	var updated *voucher.Voucher

	err := e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		v, err := repos.Vouchers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return shared.NewDomainError("NOT_FOUND", "Voucher not found")
		}

		txn, err := repos.Transactions().FindByID(ctx, v.TransactionID)
		if err != nil {
			return err
		}
		if txn == nil {
			return shared.ErrLedgerInconsistent
		}

		if err := e.requireAccounts(ctx, repos, cmd.FromAccount, cmd.ToAccount); err != nil {
			return err
		}

		if err := applyDeltas(ctx, repos.Accounts(), v.ReversalDeltas()); err != nil {
			return err
		}

		if err := v.Amend(cmd.Category, cmd.SubType, cmd.FromAccount, cmd.ToAccount, cmd.Amount, cmd.Channel, cmd.VoucherDate, cmd.Remark); err != nil {
			return err
		}

		txn.AccountNumber = cmd.FromAccount
		txn.Direction = v.VoucherType.Direction()
		txn.Amount = cmd.Amount
		txn.Channel = cmd.Channel
		txn.ChannelDetail = cmd.ChannelDetail
		txn.TxnDate = cmd.VoucherDate
		if err := repos.Transactions().Update(ctx, txn); err != nil {
			return err
		}

		if err := applyDeltas(ctx, repos.Accounts(), v.PostedDeltas()); err != nil {
			return err
		}
		updated = v
		return repos.Vouchers().Update(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete reverses and removes a voucher. A voucher whose linked transaction
// has gone missing marks the ledger inconsistent and nothing is touched.
func (e *Engine) Delete(ctx context.Context, id uuid.UUID) error {
	return e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return e.deleteInScope(ctx, repos, id)
	})
}

// BulkDelete reverses and removes a set of vouchers in one transaction.
// Any failure, including one missing linked transaction, rolls back the
// entire batch.
func (e *Engine) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "No voucher ids given")
	}
	return e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, id := range ids {
			if err := e.deleteInScope(ctx, repos, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID returns one voucher
func (e *Engine) GetByID(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	var found *voucher.Voucher
	err := e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		v, err := repos.Vouchers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return shared.NewDomainError("NOT_FOUND", "Voucher not found")
		}
		found = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List returns vouchers matching the filter with a total count
func (e *Engine) List(ctx context.Context, filter voucher.Filter) ([]voucher.Voucher, int64, error) {
	var (
		items []voucher.Voucher
		total int64
	)
	err := e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		items, total, err = repos.Vouchers().FindAll(ctx, filter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (e *Engine) deleteInScope(ctx context.Context, repos TransactionalRepositories, id uuid.UUID) error {
	v, err := repos.Vouchers().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return shared.NewDomainError("NOT_FOUND", "Voucher not found")
	}

	txn, err := repos.Transactions().FindByID(ctx, v.TransactionID)
	if err != nil {
		return err
	}
	if txn == nil {
		return shared.ErrLedgerInconsistent
	}

	if err := applyDeltas(ctx, repos.Accounts(), v.ReversalDeltas()); err != nil {
		return err
	}
	if err := repos.Transactions().Delete(ctx, txn.ID); err != nil {
		return err
	}
	return repos.Vouchers().Delete(ctx, v.GetID())
}

func (e *Engine) requireAccounts(ctx context.Context, repos TransactionalRepositories, accountNumbers ...string) error {
	for _, number := range accountNumbers {
		exists, err := repos.Accounts().ExistsByAccountNumber(ctx, number)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found: "+number)
		}
	}
	return nil
}

func applyDeltas(ctx context.Context, accounts ledger.AccountRepository, deltas []ledger.BalanceDelta) error {
	for _, d := range deltas {
		if err := accounts.AdjustBalance(ctx, d.AccountNumber, d.Amount); err != nil {
			return err
		}
	}
	return nil
}
