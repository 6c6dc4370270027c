package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
)

// Stages reported to the ProgressSink while a transaction runs
const (
	StageFunding      = "funding"
	StageRecovering   = "recovering"
	StageEstimating   = "estimating"
	StageBroadcasting = "broadcasting"
	StageConfirming   = "confirming"
	StagePersisting   = "persisting"
	StageCompleted    = "completed"
)

// Session is one run against a resolved network
type Session struct {
	Record  *domain.ConfigRecord
	Profile *domain.NetworkProfile
	Conn    ChainConnection
}

// Close releases the network connection
func (s *Session) Close() {
	if s.Conn != nil {
		s.Conn.Close()
	}
}

// TransactionRequest describes a single state-changing call
type TransactionRequest struct {
	// Operation names the journal slot, e.g. "deploy:lp" or "campaign:1"
	Operation      string
	Payload        domain.Payload
	DiscardPending bool
	// Apply writes a confirmed outcome into the record. Nil when nothing is persisted.
	Apply func(record *domain.ConfigRecord, receipt *domain.Receipt) error
}

// TransactionResult is the outcome of an executed or recovered transaction
type TransactionResult struct {
	Network   string           `json:"network" yaml:"network"`
	ChainID   uint64           `json:"chainId" yaml:"chain_id"`
	Operation string           `json:"operation" yaml:"operation"`
	From      common.Address   `json:"from" yaml:"from"`
	Hash      common.Hash      `json:"hash" yaml:"hash"`
	Nonce     uint64           `json:"nonce" yaml:"nonce"`
	Fee       *domain.FeeQuote `json:"fee,omitempty" yaml:"fee,omitempty"`
	Receipt   *domain.Receipt  `json:"receipt" yaml:"receipt"`
	Recovered bool             `json:"recovered" yaml:"recovered"`
	Persisted bool             `json:"persisted" yaml:"persisted"`
}

// Transactor runs the load, resolve, fee, submit, confirm and persist sequence
// shared by every mutating operation. It issues at most one transaction per call
// and never retries.
type Transactor struct {
	cfg       *config.RuntimeConfig
	store     ConfigStore
	journal   PendingJournal
	resolver  NetworkResolver
	connector NetworkConnector
	funder    AccountFunder
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewTransactor creates a new Transactor
func NewTransactor(
	cfg *config.RuntimeConfig,
	store ConfigStore,
	journal PendingJournal,
	resolver NetworkResolver,
	connector NetworkConnector,
	funder AccountFunder,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *Transactor {
	return &Transactor{
		cfg:       cfg,
		store:     store,
		journal:   journal,
		resolver:  resolver,
		connector: connector,
		funder:    funder,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "Transactor"),
	}
}

// Open loads the record, resolves the selected network and connects to it
func (t *Transactor) Open(ctx context.Context) (*Session, error) {
	record, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := t.resolver.Resolve(ctx, t.cfg.NetworkName, record)
	if err != nil {
		return nil, err
	}

	conn, err := t.connector.Connect(ctx, profile)
	if err != nil {
		return nil, err
	}

	t.log.Debug("session opened", "network", profile.Name, "chainId", conn.ChainID(), "endpoint", profile.Endpoint)
	return &Session{Record: record, Profile: profile, Conn: conn}, nil
}

// Execute submits req within session, waits for inclusion and persists the outcome.
// A transaction left over from an interrupted run of the same operation is
// picked up instead of broadcasting a new one.
func (t *Transactor) Execute(ctx context.Context, session *Session, req TransactionRequest) (*TransactionResult, error) {
	profile := session.Profile
	signer, ok := profile.Signer(t.cfg.SignerIndex)
	if !ok {
		return nil, &domain.NetworkResolutionError{
			Network: profile.Name,
			Reason:  fmt.Sprintf("signer index %d out of range (%d credentials)", t.cfg.SignerIndex, len(profile.Credentials)),
			Err:     domain.ErrNoSigner,
		}
	}

	if profile.Local {
		if err := t.fundLocal(ctx, profile); err != nil {
			return nil, err
		}
	}

	key := domain.JournalKey(profile.Name, req.Operation)
	result := &TransactionResult{
		Network:   profile.Name,
		ChainID:   session.Conn.ChainID(),
		Operation: req.Operation,
		From:      signer.Address(),
	}

	receipt, entry, err := t.recover(ctx, session, key, req)
	if err != nil {
		return nil, err
	}
	if receipt != nil {
		result.From = entry.From
		result.Hash = entry.Hash
		result.Nonce = entry.Nonce
		result.Receipt = receipt
		result.Recovered = true
		return t.finish(ctx, session, key, req, result)
	}

	fee, err := t.estimateFee(ctx, session.Conn, profile.Name)
	if err != nil {
		return nil, err
	}
	result.Fee = fee

	if err := t.confirmBroadcast(ctx, profile, req, fee); err != nil {
		return nil, err
	}

	t.progress.OnProgress(ctx, ProgressEvent{Stage: StageBroadcasting, Message: "Broadcasting " + req.Payload.Method, Spinner: true})
	pending, err := session.Conn.Submit(ctx, signer, req.Payload, fee, func(p *domain.PendingTransaction) error {
		return t.journal.Record(ctx, key, &domain.PendingEntry{
			Operation:       req.Operation,
			Network:         profile.Name,
			ChainID:         session.Conn.ChainID(),
			Hash:            p.Hash,
			Nonce:           p.Nonce,
			From:            p.From,
			ExpectedAddress: p.ExpectedAddress,
			SubmittedAt:     p.SubmittedAt,
			PayloadDigest:   req.Payload.Digest(),
		})
	})
	if err != nil {
		var rejected *domain.TransactionRejectedError
		if errors.As(err, &rejected) && rejected.Hash != (common.Hash{}) {
			t.clearJournal(ctx, key)
		}
		return nil, err
	}
	result.Hash = pending.Hash
	result.Nonce = pending.Nonce

	t.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: fmt.Sprintf("Waiting for %s (nonce %d)", pending.Hash.Hex(), pending.Nonce),
		Spinner: true,
	})
	receipt, err = session.Conn.AwaitConfirmation(ctx, pending)
	if err != nil {
		var rejected *domain.TransactionRejectedError
		if errors.As(err, &rejected) {
			t.clearJournal(ctx, key)
		}
		return nil, err
	}
	result.Receipt = receipt

	return t.finish(ctx, session, key, req, result)
}

// finish applies a confirmed receipt to the record, persists it and clears the journal.
// The journal entry survives a persistence failure so the next run can retry the write.
func (t *Transactor) finish(ctx context.Context, session *Session, key string, req TransactionRequest, result *TransactionResult) (*TransactionResult, error) {
	if req.Apply != nil {
		t.progress.OnProgress(ctx, ProgressEvent{Stage: StagePersisting, Message: "Saving " + t.store.Path()})
		if err := req.Apply(session.Record, result.Receipt); err != nil {
			return nil, err
		}
		if err := t.store.Persist(ctx, session.Record); err != nil {
			return nil, err
		}
		result.Persisted = true
	}

	if err := t.journal.Clear(ctx, key); err != nil {
		return nil, err
	}
	t.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	return result, nil
}

// recover looks for a journal entry left by an earlier run. It returns the
// receipt when that transaction turns out to be mined, and nil when a new
// transaction may be broadcast. An entry for a different payload is never
// adopted as the outcome of req.
func (t *Transactor) recover(ctx context.Context, session *Session, key string, req TransactionRequest) (*domain.Receipt, *domain.PendingEntry, error) {
	entry, err := t.journal.Get(ctx, key)
	if err != nil || entry == nil {
		return nil, nil, err
	}

	log := t.log.With("hash", entry.Hash.Hex(), "nonce", entry.Nonce)
	if req.DiscardPending {
		log.Warn("discarding pending transaction")
		t.progress.Info(fmt.Sprintf("Discarding pending transaction %s", entry.Hash.Hex()))
		return nil, nil, t.journal.Clear(ctx, key)
	}
	if entry.ChainID != 0 && entry.ChainID != session.Conn.ChainID() {
		log.Warn("pending transaction belongs to another chain", "chainId", entry.ChainID)
		return nil, nil, t.journal.Clear(ctx, key)
	}
	if entry.PayloadDigest != (common.Hash{}) && entry.PayloadDigest != req.Payload.Digest() {
		log.Warn("pending transaction carries a different payload", "operation", req.Operation)
		return nil, nil, fmt.Errorf("%w: %s is still tracked for %s; wait for it or rerun with --discard-pending to drop it",
			domain.ErrPendingMismatch, entry.Hash.Hex(), key)
	}

	t.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageRecovering,
		Message: fmt.Sprintf("Checking pending transaction %s", entry.Hash.Hex()),
		Spinner: true,
	})

	receipt, err := session.Conn.LookupReceipt(ctx, entry.Hash)
	if err != nil {
		return t.dropIfReverted(ctx, key, entry, err)
	}
	if receipt != nil {
		log.Info("pending transaction was mined", "block", receipt.BlockNumber)
		receipt.Recovered = true
		return receipt, entry, nil
	}

	if session.Profile.Local {
		// a restarted dev node forgets its history
		log.Info("pending transaction unknown to local node, discarding")
		return nil, nil, t.journal.Clear(ctx, key)
	}

	confirmed, err := session.Conn.ConfirmedNonce(ctx, entry.From)
	if err != nil {
		return nil, nil, err
	}
	if confirmed > entry.Nonce {
		// it may have been mined between the two reads
		receipt, err := session.Conn.LookupReceipt(ctx, entry.Hash)
		if err != nil {
			return t.dropIfReverted(ctx, key, entry, err)
		}
		if receipt != nil {
			log.Info("pending transaction was mined", "block", receipt.BlockNumber)
			receipt.Recovered = true
			return receipt, entry, nil
		}
		log.Info("nonce already used by another transaction, discarding", "confirmedNonce", confirmed)
		return nil, nil, t.journal.Clear(ctx, key)
	}

	t.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: fmt.Sprintf("Waiting for pending transaction %s", entry.Hash.Hex()),
		Spinner: true,
	})
	receipt, err = session.Conn.AwaitConfirmation(ctx, &domain.PendingTransaction{
		Hash:            entry.Hash,
		Nonce:           entry.Nonce,
		From:            entry.From,
		ExpectedAddress: entry.ExpectedAddress,
		SubmittedAt:     entry.SubmittedAt,
	})
	if err != nil {
		return t.dropIfReverted(ctx, key, entry, err)
	}
	receipt.Recovered = true
	return receipt, entry, nil
}

// dropIfReverted clears the journal for a reverted transaction so a new one can
// be sent, and propagates any other error
func (t *Transactor) dropIfReverted(ctx context.Context, key string, entry *domain.PendingEntry, err error) (*domain.Receipt, *domain.PendingEntry, error) {
	if !errors.Is(err, domain.ErrReverted) {
		return nil, nil, err
	}
	t.log.Warn("pending transaction reverted, discarding", "hash", entry.Hash.Hex())
	t.progress.Info(fmt.Sprintf("Previous transaction %s reverted", entry.Hash.Hex()))
	return nil, nil, t.journal.Clear(ctx, key)
}

// estimateFee derives the boosted fee, falling back to the static gas price
// only when the network has no base fee and one is configured
func (t *Transactor) estimateFee(ctx context.Context, conn ChainConnection, network string) (*domain.FeeQuote, error) {
	t.progress.OnProgress(ctx, ProgressEvent{Stage: StageEstimating, Message: "Estimating fee", Spinner: true})
	quote, err := conn.EstimateFee(ctx)
	if err == nil {
		return quote, nil
	}
	if errors.Is(err, domain.ErrNoBaseFee) && t.cfg.StaticGasPrice != nil {
		t.log.Warn("no base fee, using static gas price", "network", network, "gasPrice", t.cfg.StaticGasPrice)
		return domain.NewStaticFeeQuote(t.cfg.StaticGasPrice), nil
	}
	return nil, err
}

func (t *Transactor) confirmBroadcast(ctx context.Context, profile *domain.NetworkProfile, req TransactionRequest, fee *domain.FeeQuote) error {
	if profile.Local || t.cfg.AssumeYes || t.cfg.NonInteractive || t.confirmer == nil {
		return nil
	}
	prompt := fmt.Sprintf("Broadcast %s on %s at %s gwei", req.Payload.Method, profile.Name, formatGwei(fee.BoostedFeePerUnit))
	ok, err := t.confirmer.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAborted
	}
	return nil
}

// fundLocal credits the synthetic balance of every local credential that carries one
func (t *Transactor) fundLocal(ctx context.Context, profile *domain.NetworkProfile) error {
	for _, cred := range profile.Credentials {
		if cred.Balance == nil {
			continue
		}
		t.progress.OnProgress(ctx, ProgressEvent{Stage: StageFunding, Message: "Funding " + cred.Address().Hex()})
		if err := t.funder.Fund(ctx, profile.Endpoint, cred.Address(), cred.Balance); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transactor) clearJournal(ctx context.Context, key string) {
	if err := t.journal.Clear(ctx, key); err != nil {
		t.log.Warn("failed to clear pending journal", "key", key, "error", err)
	}
}

// formatGwei renders a wei amount in gwei with up to 9 decimals
func formatGwei(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	f := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.GWei))
	return f.Text('f', -1)
}
