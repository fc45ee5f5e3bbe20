package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с сервисом уведомлений (SMS)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendPaymentLink просит сервис уведомлений отправить гостю SMS со ссылкой на оплату
func (c *Client) SendPaymentLink(ctx context.Context, payload PaymentLinkRequest) (*PaymentLinkResponse, error) {
	url := fmt.Sprintf("%s/internal/notifications/payment-link", c.baseURL)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, errResp.Message)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var result PaymentLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

// SendPaymentLinkWithGracefulDegradation отправляет ссылку на оплату с graceful degradation
// Отказ сервиса не отменяет бронирование: возвращается ErrServiceDegraded, вызывающая сторона только логирует
func (c *Client) SendPaymentLinkWithGracefulDegradation(ctx context.Context, payload PaymentLinkRequest) error {
	c.log.Info("Sending payment link for booking_id=%d", payload.BookingID)

	resp, err := c.SendPaymentLink(ctx, payload)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			c.log.Warn("Payment link for booking_id=%d rejected: %v", payload.BookingID, err)
			return err
		}

		c.log.Error("Notification service unavailable, applying graceful degradation for booking_id=%d: %v", payload.BookingID, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, payload.BookingID, err)
	}

	c.log.Info("Payment link for booking_id=%d queued, message_id=%s", payload.BookingID, resp.MessageID)
	return nil
}
