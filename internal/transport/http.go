// Package transport delivers finished statements over HTTP: the flat
// statement to an LRS, the structured event to a Caliper event store.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edupipe/edupipe/internal/caliper"
	"github.com/edupipe/edupipe/internal/config"
	"github.com/edupipe/edupipe/internal/xapi"
)

const xapiVersion = "1.0.3"

// HTTP posts each statement format to its configured endpoint. One Send,
// one outcome; retries belong to the caller's disposition, not here.
type HTTP struct {
	lrs     *config.LRSConf
	caliper *config.CaliperConf
	sensor  string
	client  *http.Client
}

// New builds a transport from config. Endpoints without a URL are skipped.
func New(conf config.TransportConf, sensor string) (*HTTP, error) {
	if conf.LRS.URL == "" && conf.Caliper.URL == "" {
		return nil, fmt.Errorf("transport: no endpoint configured")
	}
	t := &HTTP{
		sensor: sensor,
		client: &http.Client{Timeout: time.Duration(conf.TimeoutMs) * time.Millisecond},
	}
	if conf.LRS.URL != "" {
		lrs := conf.LRS
		t.lrs = &lrs
	}
	if conf.Caliper.URL != "" {
		cal := conf.Caliper
		t.caliper = &cal
	}
	return t, nil
}

// Send delivers both payloads. The first endpoint failure is returned
// unmodified as the single outcome.
func (t *HTTP) Send(ctx context.Context, flat *xapi.Statement, structured *caliper.Event) error {
	if t.lrs != nil {
		if err := t.sendFlat(ctx, flat); err != nil {
			return err
		}
	}
	if t.caliper != nil {
		if err := t.sendStructured(ctx, structured); err != nil {
			return err
		}
	}
	return nil
}

func (t *HTTP) sendFlat(ctx context.Context, st *xapi.Statement) error {
	req, err := t.newRequest(ctx, t.lrs.URL, st)
	if err != nil {
		return fmt.Errorf("lrs: %w", err)
	}
	req.SetBasicAuth(t.lrs.Username, t.lrs.Password)
	req.Header.Set("X-Experience-API-Version", xapiVersion)
	return t.do(req, "lrs")
}

func (t *HTTP) sendStructured(ctx context.Context, ev *caliper.Event) error {
	env := &caliper.Envelope{
		Sensor:      t.sensor,
		SendTime:    time.Now().UTC().Format(time.RFC3339),
		DataVersion: caliper.Context,
		Data:        []*caliper.Event{ev},
	}
	req, err := t.newRequest(ctx, t.caliper.URL, env)
	if err != nil {
		return fmt.Errorf("caliper: %w", err)
	}
	if t.caliper.Token != "" {
		req.Header.Set("Authorization", "Bearer "+t.caliper.Token)
	}
	return t.do(req, "caliper")
}

func (t *HTTP) newRequest(ctx context.Context, url string, body any) (*http.Request, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (t *HTTP) do(req *http.Request, endpoint string) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: unexpected status %d", endpoint, resp.StatusCode)
	}
	return nil
}
