package credits

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// BudgetValidator checks a credit against the national carbon budget (NDC).
// An external-system call: failures are reported, not retried.
type BudgetValidator interface {
	Validate(ctx context.Context, credit *CarbonCredit) (valid bool, message string, err error)
}

// RegistryClient syncs a minted credit to the global registry. Best-effort
// bookkeeping, not part of the transactional boundary.
type RegistryClient interface {
	Sync(ctx context.Context, credit *CarbonCredit) (registryURL string, err error)
}

// NDCBudgetValidator is the placeholder national-budget integration. The
// production implementation calls the government NDC API.
type NDCBudgetValidator struct{}

// NewNDCBudgetValidator creates the placeholder budget validator
func NewNDCBudgetValidator() *NDCBudgetValidator {
	return &NDCBudgetValidator{}
}

func (v *NDCBudgetValidator) Validate(ctx context.Context, credit *CarbonCredit) (bool, string, error) {
	return true, "carbon credit validated against Nationally Determined Contribution (NDC)", nil
}

// OpenEarthClient posts minted credits to the Open Earth register
type OpenEarthClient struct {
	baseURL string
	client  *http.Client
}

// NewOpenEarthClient creates a registry client for the given base URL
func NewOpenEarthClient(baseURL string, timeout time.Duration) *OpenEarthClient {
	return &OpenEarthClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *OpenEarthClient) Sync(ctx context.Context, credit *CarbonCredit) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"registry_id": credit.RegistryID,
		"token_id":    credit.TokenID,
		"units":       credit.Units,
		"minted_at":   credit.MintedAt,
		"status":      credit.Status,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, credit.RegistryID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("registry returned status %d", resp.StatusCode)
	}
	return url, nil
}
