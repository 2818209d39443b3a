// Package chain mirrors the on-chain sumo contract into plain values the
// arena can reconcile against. The arena polls through the Reader
// interface and never blocks on it; a failed fetch leaves local state
// untouched.
package chain

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// PlayerStake is one on-chain registered player.
type PlayerStake struct {
	Address string
	Bet     float64 // FLOW
}

// Snapshot is the mirrored contract state at one poll.
type Snapshot struct {
	Active  bool
	Players []PlayerStake
	At      time.Time
}

// Reader is the capability the arena polls.
type Reader interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// Client reads the sumo contract over a Flow-EVM RPC endpoint.
type Client struct {
	ec       *ethclient.Client
	contract common.Address
	log      *slog.Logger
}

const callTimeout = 4 * time.Second

var (
	selGameState = selector("getGameState()")
	selPlayers   = selector("getPlayers()")
	selPlayerBet = selector("getPlayerBet(address)")
)

func Dial(rpcURL, contractAddr string, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	if !common.IsHexAddress(contractAddr) {
		return nil, fmt.Errorf("chain: invalid contract address %q", contractAddr)
	}
	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("chain: dial %s: %w", rpcURL, err)
	}
	return &Client{ec: ec, contract: common.HexToAddress(contractAddr), log: log}, nil
}

func (c *Client) Close() {
	c.ec.Close()
}

// Fetch reads the game-active flag and the registered player set. A
// missing per-player bet is tolerated and reported as zero.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	activeRet, err := c.call(ctx, selGameState)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getGameState: %w", err)
	}
	active := decodeBool(activeRet)

	playersRet, err := c.call(ctx, selPlayers)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getPlayers: %w", err)
	}
	addrs, err := decodeAddressList(playersRet)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getPlayers: %w", err)
	}

	players := make([]PlayerStake, 0, len(addrs))
	for _, addr := range addrs {
		bet, err := c.playerBet(ctx, addr)
		if err != nil {
			c.log.Warn("chain: player bet lookup failed", "address", addr.Hex(), "err", err)
			bet = 0
		}
		players = append(players, PlayerStake{Address: addr.Hex(), Bet: bet})
	}

	return Snapshot{Active: active, Players: players, At: time.Now()}, nil
}

func (c *Client) playerBet(ctx context.Context, addr common.Address) (float64, error) {
	data := make([]byte, 0, 36)
	data = append(data, selPlayerBet...)
	data = append(data, common.LeftPadBytes(addr.Bytes(), 32)...)
	ret, err := c.callData(ctx, data)
	if err != nil {
		return 0, err
	}
	return weiToFlow(decodeUint(ret)), nil
}

func (c *Client) call(ctx context.Context, sel []byte) ([]byte, error) {
	return c.callData(ctx, sel)
}

func (c *Client) callData(ctx context.Context, data []byte) ([]byte, error) {
	return c.ec.CallContract(ctx, ethereum.CallMsg{To: &c.contract, Data: data}, nil)
}

func selector(sig string) []byte {
	return crypto.Keccak256([]byte(sig))[:4]
}

// The contract surface is three fixed view functions, so return data is
// decoded by word slicing instead of a full ABI dependency.

func decodeBool(ret []byte) bool {
	return len(ret) >= 32 && ret[31] == 1
}

func decodeUint(ret []byte) *big.Int {
	if len(ret) < 32 {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(ret[:32])
}

func decodeAddressList(ret []byte) ([]common.Address, error) {
	if len(ret) < 64 {
		return nil, nil
	}
	offset := new(big.Int).SetBytes(ret[:32])
	if !offset.IsInt64() || offset.Int64()+32 > int64(len(ret)) {
		return nil, fmt.Errorf("bad array offset")
	}
	o := offset.Int64()
	count := new(big.Int).SetBytes(ret[o : o+32])
	if !count.IsInt64() {
		return nil, fmt.Errorf("bad array length")
	}
	n := count.Int64()
	if o+32+n*32 > int64(len(ret)) {
		return nil, fmt.Errorf("truncated array: want %d entries", n)
	}
	addrs := make([]common.Address, 0, n)
	for i := int64(0); i < n; i++ {
		word := ret[o+32+i*32 : o+64+i*32]
		addrs = append(addrs, common.BytesToAddress(word[12:]))
	}
	return addrs, nil
}

func weiToFlow(wei *big.Int) float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18)).Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}
