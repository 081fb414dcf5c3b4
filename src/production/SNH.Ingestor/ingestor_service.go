package snhingestor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	config "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Config"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// Ingestor holds the broker connection and drives the ingestion cadence:
// accepted messages queue up and are drained once per cycle interval,
// each processed sequentially (archive raw, then fan out). Reconnects are
// handled by the client with a fixed delay and never terminate the
// process.
type Ingestor struct {
	cfg         config.BrokerConfig
	rawReadings interfaces.RawReadingRepository
	dispatcher  *Dispatcher
	client      mqtt.Client
	msgCh       chan *snhmodels.RawReading
	mu          sync.RWMutex
	closed      bool
	wg          sync.WaitGroup
	logger      *logger.Logger
}

func New(cfg config.BrokerConfig, rawReadings interfaces.RawReadingRepository, dispatcher *Dispatcher, log *logger.Logger) *Ingestor {
	return &Ingestor{
		cfg:         cfg,
		rawReadings: rawReadings,
		dispatcher:  dispatcher,
		msgCh:       make(chan *snhmodels.RawReading, 4096),
		logger:      log,
	}
}

func (i *Ingestor) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(i.cfg.GetBrokerURL()).
		SetClientID(i.cfg.ClientID).
		SetOrderMatters(true).
		SetKeepAlive(i.cfg.KeepAlive).
		SetPingTimeout(i.cfg.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(i.cfg.ReconnectDelay).
		SetMaxReconnectInterval(i.cfg.ReconnectDelay).
		SetCleanSession(false)

	if i.cfg.LastWillTopic != "" {
		opts.SetWill(i.cfg.LastWillTopic, i.cfg.LastWillMessage, 1, false)
	}

	if i.cfg.User != "" {
		opts.SetUsername(i.cfg.User)
		opts.SetPassword(i.cfg.Pass)
	}

	if i.cfg.UseTLS {
		tlsCfg, err := i.tlsConfig(i.cfg.CACertPath)
		if err != nil {
			return err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		i.logger.Logger.Warn().Err(err).Dur("reconnect_delay", i.cfg.ReconnectDelay).Msg("Broker connection lost, reconnecting")
	}
	opts.OnConnect = func(c mqtt.Client) {
		i.logger.Logger.Info().Str("topic", i.cfg.Topic).Msg("Broker connected, subscribing to telemetry topic")
		if token := c.Subscribe(i.cfg.Topic, 1, i.onMessage); token.Wait() && token.Error() != nil {
			i.logger.Logger.Error().Err(token.Error()).Str("topic", i.cfg.Topic).Msg("Failed to subscribe to telemetry topic")
		}
	}

	i.client = mqtt.NewClient(opts)
	if tk := i.client.Connect(); tk.Wait() && tk.Error() != nil {
		return tk.Error()
	}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		i.cycleWorker(ctx)
	}()

	return nil
}

func (i *Ingestor) Stop() {
	if i.client != nil && i.client.IsConnected() {
		i.client.Disconnect(500)
	}

	// A paho handler may still be in flight after Disconnect returns, so
	// the channel close is fenced by the same lock enqueue takes.
	i.mu.Lock()
	if !i.closed {
		i.closed = true
		close(i.msgCh)
	}
	i.mu.Unlock()

	i.wg.Wait()
}

func (i *Ingestor) IsConnected() bool {
	return i.client != nil && i.client.IsConnected()
}

// onMessage decodes and validates one broker message. Malformed payloads
// are dropped here, before anything is persisted.
func (i *Ingestor) onMessage(_ mqtt.Client, m mqtt.Message) {
	raw, err := snhmodels.ParseRawReading(m.Topic(), m.Payload(), time.Now().UTC())
	if err != nil {
		i.logger.Logger.Warn().Err(err).Str("topic", m.Topic()).Str("payload", string(m.Payload())).Msg("Dropping invalid telemetry message")
		return
	}

	i.enqueue(raw)
}

// enqueue hands a validated reading to the cycle worker. It never blocks
// the paho handler: a full queue drops the message, and after Stop has
// closed the channel the reading is discarded.
func (i *Ingestor) enqueue(raw *snhmodels.RawReading) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.closed {
		i.logger.Logger.Debug().Str("topic", raw.Topic).Msg("Ingestor stopping, discarding telemetry message")
		return
	}

	select {
	case i.msgCh <- raw:
		i.logger.Logger.Debug().Str("topic", raw.Topic).Msg("Queuing telemetry message")
	default:
		i.logger.Logger.Warn().Str("topic", raw.Topic).Msg("Telemetry queue full, dropping message")
	}
}

// cycleWorker drains queued messages once per cycle interval. Processing
// within a cycle is strictly sequential, so two messages never race on
// the same sensor rows.
func (i *Ingestor) cycleWorker(ctx context.Context) {
	batch := make([]*snhmodels.RawReading, 0, 64)
	timer := time.NewTimer(i.cfg.CycleInterval)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		i.logger.Logger.Info().Int("count", len(batch)).Msg("Processing telemetry cycle")

		for _, raw := range batch {
			i.process(ctx, raw)
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case raw, ok := <-i.msgCh:
			if !ok {
				flush()
				return
			}
			batch = append(batch, raw)
		case <-timer.C:
			flush()
			timer.Reset(i.cfg.CycleInterval)
		}
	}
}

// process archives one raw reading and fans it out. An archive failure
// drops the message with a warning: with QoS 1 the broker may redeliver,
// otherwise delivery is at-most-once.
func (i *Ingestor) process(ctx context.Context, raw *snhmodels.RawReading) {
	id, err := i.rawReadings.Append(ctx, raw)
	if err != nil {
		i.logger.Logger.Warn().Err(err).Str("topic", raw.Topic).Msg("Raw reading archive unavailable, dropping message")
		return
	}

	i.logger.Logger.Debug().Str("raw_reading_id", id).Msg("Raw reading archived")
	i.dispatcher.OnRawReading(ctx, raw)
}

func (i *Ingestor) tlsConfig(caFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caFile == "" {
		return cfg, nil
	}
	ca, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("bad CA file")
	}
	cfg.RootCAs = cp
	return cfg, nil
}
