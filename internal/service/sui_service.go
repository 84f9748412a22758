package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"block_sensei_backend/internal/config"
	"block_sensei_backend/pkg/logger"

	"go.uber.org/zap"
)

// SuiService is a thin call-and-forget bridge to a Sui fullnode. It mints the
// SENSEI token reward for a finished mission; failures are logged and never
// surface to the completing request.
type SuiService struct {
	config config.SuiConfig
	client *http.Client
}

func NewSuiService(cfg config.SuiConfig) *SuiService {
	return &SuiService{
		config: cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type suiRPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type suiRPCResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// MintReward submits an unsafe_moveCall mint transaction for the recipient
// wallet. No-op when the bridge is disabled or the user has no wallet.
func (s *SuiService) MintReward(recipient string, amount uint64, token string) {
	if !s.config.Enabled || recipient == "" {
		return
	}

	req := suiRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "unsafe_moveCall",
		Params: []interface{}{
			s.config.SignerAddr,
			s.config.PackageID,
			"sensei_token",
			"mint",
			[]interface{}{},
			[]interface{}{s.config.TreasuryID, strconv.FormatUint(amount, 10), recipient},
			nil,
			strconv.FormatUint(s.config.GasBudget, 10),
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		logger.Log.Error("sui mint request marshal failed", zap.Error(err))
		return
	}

	resp, err := s.client.Post(s.config.RPCEndpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Log.Error("sui mint call failed",
			zap.String("recipient", recipient),
			zap.Uint64("amount", amount),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	var rpcResp suiRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		logger.Log.Error("sui mint response decode failed", zap.Error(err))
		return
	}
	if rpcResp.Error != nil {
		logger.Log.Error("sui mint rejected",
			zap.String("recipient", recipient),
			zap.String("rpc_error", fmt.Sprintf("%d %s", rpcResp.Error.Code, rpcResp.Error.Message)))
		return
	}

	logger.Log.Info("sui mint submitted",
		zap.String("recipient", recipient),
		zap.Uint64("amount", amount),
		zap.String("token", token))
}
