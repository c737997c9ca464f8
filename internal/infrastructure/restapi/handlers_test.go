package restapi

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flarekit/internal/app/connector"
	"flarekit/internal/app/service"
	"flarekit/internal/domain/entity"
	"flarekit/internal/infrastructure/chain"
	"flarekit/internal/infrastructure/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubExplorer struct {
	status    string
	statusErr error
	abi       string
}

func (s stubExplorer) GetContractABI(ctx context.Context, address string) (string, error) {
	return s.abi, nil
}

func (s stubExplorer) GetTransactionStatus(ctx context.Context, txHash string) (string, error) {
	return s.status, s.statusErr
}

// stubChain satisfies chain.Client for handler tests that never reach the
// network.
type stubChain struct{}

func (stubChain) Call(ctx context.Context, inv *contracts.Invocation) ([]any, error) {
	return nil, fmt.Errorf("unexpected call %s", inv.Name())
}

func (stubChain) BuildTransaction(ctx context.Context, inv *contracts.Invocation, sender common.Address, value *big.Int) (*entity.UnsignedTx, error) {
	return nil, fmt.Errorf("unexpected build %s", inv.Name())
}

func (stubChain) SignAndSendTransaction(ctx context.Context, utx *entity.UnsignedTx) (string, error) {
	return "", fmt.Errorf("unexpected send")
}

func (stubChain) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (stubChain) Address() common.Address { return common.Address{} }
func (stubChain) ChainID() *big.Int       { return big.NewInt(14) }
func (stubChain) CanWrite() bool          { return true }
func (stubChain) Close()                  {}

var _ chain.Client = stubChain{}

func testRouter(t *testing.T, exp stubExplorer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stargate, err := connector.NewStargate(entity.DefaultMainnetAddresses(), zap.NewNop())
	if err != nil {
		t.Fatalf("new stargate: %v", err)
	}
	positions := service.NewPositionsService("flare", nil, zap.NewNop())

	h := NewHandlers(positions, nil, stargate, nil, nil, exp, "flare", zap.NewNop())
	return SetupRouter(h)
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t, stubExplorer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGetPositionsRejectsInvalidAddress(t *testing.T) {
	router := testRouter(t, stubExplorer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/positions/not-an-address", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetPositionsEmptyRegistry(t *testing.T) {
	router := testRouter(t, stubExplorer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/positions/0x00000000000000000000000000000000000000AA", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"network":"flare"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestGetBridgeInfo(t *testing.T) {
	router := testRouter(t, stubExplorer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bridge/info", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"endpointId":30295`) {
		t.Fatalf("endpoint id missing from %s", body)
	}
	if !strings.Contains(body, `"supportedTokens":["ETH","USDC","USDT"]`) {
		t.Fatalf("token list missing from %s", body)
	}
}

func TestGetTransactionStatusMapping(t *testing.T) {
	cases := []struct {
		explorerStatus string
		want           string
	}{
		{"1", "success"},
		{"0", "failed"},
		{"", "pending"},
	}
	for _, tc := range cases {
		router := testRouter(t, stubExplorer{status: tc.explorerStatus})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/transactions/0xabc/status", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), fmt.Sprintf(`"status":%q`, tc.want)) {
			t.Fatalf("expected status %q in %s", tc.want, w.Body.String())
		}
	}
}

func TestGetTransactionStatusExplorerFailure(t *testing.T) {
	router := testRouter(t, stubExplorer{statusErr: fmt.Errorf("explorer unavailable")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/transactions/0xabc/status", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestPostDocumentUnavailableWithoutRegistry(t *testing.T) {
	router := testRouter(t, stubExplorer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingestion/documents", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestUnconfiguredConnectorsReturnServiceUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	positions := service.NewPositionsService("coston2", nil, zap.NewNop())
	h := NewHandlers(positions, nil, nil, nil, nil, stubExplorer{}, "coston2", zap.NewNop())
	router := SetupRouter(h)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/staking/exchange-rate", ""},
		{http.MethodGet, "/api/v1/bridge/info", ""},
		{http.MethodPost, "/api/v1/swap", "{}"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		router.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s %s: expected 503, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestPostSwapRejectsUnknownFeeTier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dex, err := connector.NewSparkDEX(stubChain{}, entity.DefaultMainnetAddresses(), zap.NewNop())
	if err != nil {
		t.Fatalf("new sparkdex: %v", err)
	}
	positions := service.NewPositionsService("flare", nil, zap.NewNop())
	h := NewHandlers(positions, nil, nil, dex, nil, stubExplorer{}, "flare", zap.NewNop())
	router := SetupRouter(h)

	body := `{"tokenIn":"0x0000000000000000000000000000000000000001",` +
		`"tokenOut":"0x0000000000000000000000000000000000000002",` +
		`"fee":12345,"amountIn":"1000"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/swap", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "fee") {
		t.Fatalf("expected fee tier error, got %s", w.Body.String())
	}
}
