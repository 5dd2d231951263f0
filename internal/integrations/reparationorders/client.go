package reparationorders

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

	"github.com/sony/gobreaker/v2"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BreakerSettings параметры circuit breaker
type BreakerSettings struct {
	// Сколько подряд неудачных вызовов размыкают цепь
	MaxFailures uint32
	// Сколько цепь остаётся разомкнутой
	OpenInterval time.Duration
}

// Client клиент сервиса заказ-нарядов
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*OrderResponse]
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, breaker BreakerSettings, log Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*OrderResponse](gobreaker.Settings{
		Name:        "reparation-orders",
		MaxRequests: 1,
		Timeout:     breaker.OpenInterval,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breaker.MaxFailures
		},
		// Отказ сервиса в валидации не говорит о его недоступности
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker %s changed state: %s -> %s", name, from.String(), to.String())
		},
	})

	return c
}

// CreateOrder создает заказ-наряд во внешнем сервисе
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.ReparationOrder, error) {
	c.log.Info("Creating reparation order for workshop_id=%d", req.WorkshopID)

	resp, err := c.breaker.Execute(func() (*OrderResponse, error) {
		return c.createOrder(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Error("Reparation order service circuit is open: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		return nil, err
	}

	c.log.Info("Reparation order created: id=%d, workshop_id=%d", resp.ID, resp.WorkshopID)

	return &domain.ReparationOrder{
		ID:          resp.ID,
		Name:        resp.Name,
		Description: resp.Description,
		WorkshopID:  resp.WorkshopID,
		Status:      resp.Status,
	}, nil
}

func (c *Client) createOrder(ctx context.Context, body CreateOrderRequest) (*OrderResponse, error) {
	url := fmt.Sprintf("%s/internal/reparation-orders", c.baseURL)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, readError(resp.Body))
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrServiceUnavailable, resp.StatusCode, readError(resp.Body))
	}

	var order OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if order.ID == 0 {
		return nil, fmt.Errorf("%w: response without order id", ErrInvalidResponse)
	}

	return &order, nil
}

func readError(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(body)
}
