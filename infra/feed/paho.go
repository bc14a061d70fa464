// Package feed publishes dispatch outcomes over MQTT so dashboards and
// downstream consumers can follow a run live.
package feed

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/dispatchsim/core/model"
	"github.com/kilianp07/dispatchsim/infra/logger"
)

// Default topics used when the config leaves them empty.
const (
	DefaultRecordTopic   = "dispatch/records"
	DefaultUnservedTopic = "dispatch/unserved"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Broker        string      `json:"broker"`
	ClientID      string      `json:"client_id"`
	Username      string      `json:"username"`
	Password      string      `json:"password"`
	RecordTopic   string      `json:"record_topic"`
	UnservedTopic string      `json:"unserved_topic"`
	QoS           byte        `json:"qos"`
	UseTLS        bool        `json:"use_tls"`
	ClientCert    string      `json:"client_cert"`
	ClientKey     string      `json:"client_key"`
	CABundle      string      `json:"ca_bundle"`
	LWTTopic      string      `json:"lwt_topic"`
	LWTPayload    string      `json:"lwt_payload"`
	LWTQoS        byte        `json:"lwt_qos"`
	LWTRetain     bool        `json:"lwt_retain"`
	MaxRetries    int         `json:"max_retries"`
	BackoffMS     int         `json:"backoff_ms"`
	TLSConfig     *tls.Config `json:"-"`
}

// pahoClient is the slice of the paho API the publisher uses; tests swap it.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements feed.Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli           pahoClient
	recordTopic   string
	unservedTopic string
	qos           byte
	maxRetries    int
	backoff       time.Duration
	logger        logger.Logger
}

// NewPahoPublisher connects to the MQTT broker described by cfg.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("feed")
	p := &PahoPublisher{
		recordTopic:   cfg.RecordTopic,
		unservedTopic: cfg.UnservedTopic,
		qos:           cfg.QoS,
		maxRetries:    cfg.MaxRetries,
		backoff:       time.Duration(cfg.BackoffMS) * time.Millisecond,
		logger:        log,
	}
	if p.recordTopic == "" {
		p.recordTopic = DefaultRecordTopic
	}
	if p.unservedTopic == "" {
		p.unservedTopic = DefaultUnservedTopic
	}
	if p.maxRetries <= 0 {
		p.maxRetries = 3
	}
	if p.backoff <= 0 {
		p.backoff = 100 * time.Millisecond
	}

	opts.OnConnect = func(paho.Client) {
		log.Infof("feed connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("feed connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to feed broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	p.cli = c
	return p, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.LWTQoS, cfg.LWTRetain)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}
	return cfg, nil
}

// PublishRecord announces an assignment on the record topic.
func (p *PahoPublisher) PublishRecord(rec model.DispatchRecord) (string, error) {
	msgID := uuid.NewString()
	msg := struct {
		MessageID string `json:"message_id"`
		model.DispatchRecord
		Timestamp int64 `json:"timestamp"`
	}{
		MessageID:      msgID,
		DispatchRecord: rec,
		Timestamp:      time.Now().UnixMilli(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	if err := p.publish(p.recordTopic, payload); err != nil {
		return "", err
	}
	p.logger.Debugf("published record %s for call %d", msgID, rec.CallID)
	return msgID, nil
}

// PublishUnserved announces an unserved call on the unserved topic.
func (p *PahoPublisher) PublishUnserved(call model.Call, reason string) (string, error) {
	msgID := uuid.NewString()
	msg := struct {
		MessageID string `json:"message_id"`
		CallID    int    `json:"call_id"`
		CallType  string `json:"call_type"`
		Location  string `json:"call_location"`
		Reason    string `json:"reason"`
		Timestamp int64  `json:"timestamp"`
	}{
		MessageID: msgID,
		CallID:    call.ID,
		CallType:  call.Type,
		Location:  call.Location,
		Reason:    reason,
		Timestamp: time.Now().UnixMilli(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	if err := p.publish(p.unservedTopic, payload); err != nil {
		return "", err
	}
	return msgID, nil
}

// publish sends the payload, retrying with exponential backoff.
func (p *PahoPublisher) publish(topic string, payload []byte) error {
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, p.qos, false, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			return nil
		}
		p.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		time.Sleep(p.backoff * time.Duration(1<<attempt))
	}
	return publishErr
}

// Disconnect gracefully closes the MQTT connection.
func (p *PahoPublisher) Disconnect() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
