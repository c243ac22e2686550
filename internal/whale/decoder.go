package whale

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// TransferEventSignature is topic 0 of Transfer(address,address,uint256).
var TransferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

var (
	ErrDecode = errors.New("failed to decode transfer log")
	// ErrNotTransfer is returned for logs of other events, including
	// ERC-721 transfers which carry a third indexed topic.
	ErrNotTransfer = fmt.Errorf("%w: not an erc20 transfer", ErrDecode)
	// ErrMalformedLog is returned when the data is not an unsigned integer
	// of up to 256 bits.
	ErrMalformedLog = fmt.Errorf("%w: malformed amount", ErrDecode)
)

// DecodeTransferLog decodes an ERC-20 Transfer log. Sender and receiver are
// the low-order 20 bytes of topics 1 and 2, the amount is the big-endian
// integer in data.
func DecodeTransferLog(log *types.Log) (*TokenTransfer, error) {
	if log == nil || len(log.Topics) != 3 || log.Topics[0] != TransferEventSignature {
		return nil, ErrNotTransfer
	}
	if len(log.Data) == 0 || len(log.Data) > 32 {
		return nil, fmt.Errorf("%w: %d data bytes", ErrMalformedLog, len(log.Data))
	}

	amount := new(uint256.Int).SetBytes(log.Data)

	return &TokenTransfer{
		Contract: log.Address,
		From:     common.BytesToAddress(log.Topics[1].Bytes()),
		To:       common.BytesToAddress(log.Topics[2].Bytes()),
		Amount:   amount.ToBig(),
		TxHash:   log.TxHash,
		LogIndex: log.Index,
	}, nil
}
