// Package account talks to the external account service that owns user
// credentials, the user directory and payment orders.
package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/domain"
)

var (
	// ErrRejected is a 4xx answer: bad credentials, duplicate user, bad amount.
	ErrRejected = errors.New("account service rejected the request")
	// ErrUnavailable covers transport failures, 5xx answers and unusable bodies.
	ErrUnavailable = errors.New("account service unavailable")
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(cfg config.AccountConfig, log *zap.Logger) *Client {
	hc := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	return NewClientWithHTTP(cfg.BaseURL, hc, log)
}

func NewClientWithHTTP(baseURL string, hc *http.Client, log *zap.Logger) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc, log: log}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Login returns the token the account service issues for the credentials.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	token := gjson.GetBytes(body, "token")
	if !token.Exists() || token.String() == "" {
		return "", fmt.Errorf("%w: login response has no token", ErrUnavailable)
	}
	return token.String(), nil
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Role == "" {
		input.Role = "User"
	}
	payload := struct {
		RegisterInput
		Registered string `json:"registered"`
	}{RegisterInput: input, Registered: time.Now().UTC().Format(time.RFC3339)}

	body, err := c.do(ctx, http.MethodPost, "/api/register", payload)
	if err != nil {
		return nil, err
	}

	user := domain.User{Username: input.Username, Email: input.Email, Role: input.Role, Registered: time.Now().UTC()}
	if parsed := gjson.ParseBytes(body); parsed.IsObject() && parsed.Get("username").Exists() {
		user = parseUser(parsed)
	}
	c.log.Info("user registered", zap.String("username", user.Username))
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: users response is not a list", ErrUnavailable)
	}

	users := make([]domain.User, 0, len(parsed.Array()))
	parsed.ForEach(func(_, value gjson.Result) bool {
		users = append(users, parseUser(value))
		return true
	})
	return users, nil
}

// CreateOrder opens a payment order for amount rupees.
func (c *Client) CreateOrder(ctx context.Context, amount float64) (*domain.Receipt, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/payment/order", map[string]float64{"amount": amount})
	if err != nil {
		return nil, err
	}
	id := gjson.GetBytes(body, "id")
	if !id.Exists() {
		return nil, fmt.Errorf("%w: order response has no id", ErrUnavailable)
	}
	return &domain.Receipt{
		OrderID:  id.String(),
		Amount:   gjson.GetBytes(body, "amount").Float(),
		Currency: gjson.GetBytes(body, "currency").String(),
	}, nil
}

// Charge makes the client usable as the checkout payment gateway.
func (c *Client) Charge(ctx context.Context, charge domain.Charge) (*domain.Receipt, error) {
	return c.CreateOrder(ctx, charge.Amount)
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("account service call failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, path, err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s answered %d", ErrUnavailable, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = gjson.GetBytes(body, "message").String()
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return body, nil
}

func parseUser(v gjson.Result) domain.User {
	id := v.Get("id")
	if !id.Exists() {
		id = v.Get("_id")
	}
	user := domain.User{
		ID:       id.String(),
		Username: v.Get("username").String(),
		Email:    v.Get("email").String(),
		Role:     v.Get("role").String(),
	}
	if raw := v.Get("registered").String(); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			user.Registered = t
		}
	}
	return user
}
