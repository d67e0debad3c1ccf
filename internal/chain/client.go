// Package chain is a typed wrapper over the deployed prediction and reward
// contracts. It sees the chain through address plus ABI only; contract
// internals stay on the other side of the RPC boundary.
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrReadOnly is returned by write methods when no signing key was configured.
var ErrReadOnly = errors.New("chain client is read-only: no private key configured")

// Config locates the contracts and optionally arms the client for writes.
type Config struct {
	RPCURL         string
	PredictionAddr string
	RewardAddr     string
	PrivateKey     string // hex, optional; empty means read-only
}

// Client talks to the prediction and reward contracts.
type Client struct {
	eth            *ethclient.Client
	predictionAddr common.Address
	rewardAddr     common.Address
	predictionABI  abi.ABI
	rewardABI      abi.ABI
	key            *ecdsa.PrivateKey
	chainID        *big.Int
}

// Dial connects to the RPC endpoint and parses the contract ABIs. The chain
// ID is read from the node once and reused for every signature.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}

	predictionABI, err := abi.JSON(strings.NewReader(predictionABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse prediction abi: %w", err)
	}
	rewardABI, err := abi.JSON(strings.NewReader(rewardABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse reward abi: %w", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}

	c := &Client{
		eth:            eth,
		predictionAddr: common.HexToAddress(cfg.PredictionAddr),
		rewardAddr:     common.HexToAddress(cfg.RewardAddr),
		predictionABI:  predictionABI,
		rewardABI:      rewardABI,
		chainID:        chainID,
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		c.key = key
	}

	return c, nil
}

// ReadOnly reports whether write methods are disabled.
func (c *Client) ReadOnly() bool {
	return c.key == nil
}

// Close releases the RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

func (c *Client) call(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}

	values, err := contractABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return values, nil
}

// GetRound reads one prediction round.
func (c *Client) GetRound(ctx context.Context, roundID uint64) (*Round, error) {
	values, err := c.call(ctx, c.predictionAddr, c.predictionABI, "getRound", new(big.Int).SetUint64(roundID))
	if err != nil {
		return nil, err
	}
	round := abi.ConvertType(values[0], new(Round)).(*Round)
	return round, nil
}

// GetUserPrediction reads one user's stake in a round.
func (c *Client) GetUserPrediction(ctx context.Context, roundID uint64, user common.Address) (*UserPrediction, error) {
	values, err := c.call(ctx, c.predictionAddr, c.predictionABI, "getUserPrediction", new(big.Int).SetUint64(roundID), user)
	if err != nil {
		return nil, err
	}
	prediction := abi.ConvertType(values[0], new(UserPrediction)).(*UserPrediction)
	return prediction, nil
}

// GetUserStats reads a user's aggregate prediction record.
func (c *Client) GetUserStats(ctx context.Context, user common.Address) (*UserStats, error) {
	values, err := c.call(ctx, c.predictionAddr, c.predictionABI, "getUserStats", user)
	if err != nil {
		return nil, err
	}
	if len(values) != 3 {
		return nil, fmt.Errorf("unexpected getUserStats result arity: %d", len(values))
	}
	return &UserStats{
		TotalPredictions: values[0].(*big.Int),
		TotalWins:        values[1].(*big.Int),
		WinRate:          values[2].(*big.Int),
	}, nil
}

// GetActiveRounds lists round IDs currently open for staking.
func (c *Client) GetActiveRounds(ctx context.Context) ([]*big.Int, error) {
	values, err := c.call(ctx, c.predictionAddr, c.predictionABI, "getActiveRounds")
	if err != nil {
		return nil, err
	}
	return values[0].([]*big.Int), nil
}

// CurrentRoundID reads the latest round counter.
func (c *Client) CurrentRoundID(ctx context.Context) (*big.Int, error) {
	values, err := c.call(ctx, c.predictionAddr, c.predictionABI, "currentRoundId")
	if err != nil {
		return nil, err
	}
	return values[0].(*big.Int), nil
}

// MinStake reads the contract's minimum stake in wei.
func (c *Client) MinStake(ctx context.Context) (*big.Int, error) {
	values, err := c.call(ctx, c.predictionAddr, c.predictionABI, "minStake")
	if err != nil {
		return nil, err
	}
	return values[0].(*big.Int), nil
}

// GetUserProfile reads the rewards contract profile.
func (c *Client) GetUserProfile(ctx context.Context, user common.Address) (*UserProfile, error) {
	values, err := c.call(ctx, c.rewardAddr, c.rewardABI, "getUserProfile", user)
	if err != nil {
		return nil, err
	}
	profile := abi.ConvertType(values[0], new(UserProfile)).(*UserProfile)
	return profile, nil
}

// PlacePrediction stakes on a round's direction. The stake rides as the
// transaction value.
func (c *Client) PlacePrediction(ctx context.Context, roundID uint64, up bool, stake *big.Int) (*TxHandle, error) {
	return c.transact(ctx, c.predictionAddr, c.predictionABI, stake, "predict", new(big.Int).SetUint64(roundID), up)
}

// ClaimReward claims a resolved round's payout.
func (c *Client) ClaimReward(ctx context.Context, roundID uint64) (*TxHandle, error) {
	return c.transact(ctx, c.predictionAddr, c.predictionABI, nil, "claimReward", new(big.Int).SetUint64(roundID))
}

// ClaimDailyReward claims the daily contribution reward.
func (c *Client) ClaimDailyReward(ctx context.Context) (*TxHandle, error) {
	return c.transact(ctx, c.rewardAddr, c.rewardABI, nil, "claimDailyReward")
}

func (c *Client) transact(ctx context.Context, contract common.Address, contractABI abi.ABI, value *big.Int, method string, args ...interface{}) (*TxHandle, error) {
	if c.key == nil {
		return nil, ErrReadOnly
	}

	auth, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	auth.Context = ctx
	auth.Value = value

	bound := bind.NewBoundContract(contract, contractABI, c.eth, c.eth, c.eth)
	tx, err := bound.Transact(auth, method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s transaction failed: %w", method, err)
	}

	return &TxHandle{
		tx:     tx,
		status: TxPending,
		eth:    c.eth,
	}, nil
}

// TxStatus is the lifecycle of a submitted transaction as the caller sees it.
type TxStatus string

const (
	TxPending    TxStatus = "pending"
	TxConfirming TxStatus = "confirming"
	TxSuccess    TxStatus = "success"
	TxFailed     TxStatus = "failed"
)

// TxHandle tracks one submitted transaction through to its receipt.
type TxHandle struct {
	tx     *types.Transaction
	status TxStatus
	eth    *ethclient.Client
}

// Hash returns the transaction hash.
func (h *TxHandle) Hash() common.Hash {
	return h.tx.Hash()
}

// Status returns the last observed lifecycle state.
func (h *TxHandle) Status() TxStatus {
	return h.status
}

// Wait blocks until the transaction is mined and returns its receipt. The
// handle moves to confirming while waiting and lands on success or failed.
func (h *TxHandle) Wait(ctx context.Context) (*types.Receipt, error) {
	h.status = TxConfirming

	receipt, err := bind.WaitMined(ctx, h.eth, h.tx)
	if err != nil {
		h.status = TxFailed
		return nil, fmt.Errorf("failed waiting for receipt: %w", err)
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		h.status = TxSuccess
	} else {
		h.status = TxFailed
	}
	return receipt, nil
}
