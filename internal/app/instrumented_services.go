package app

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/metrics"
)

type instrumentedKeyGenerationService struct {
	next    keys.KeyGenerationService
	metrics *metrics.Metrics
}

// NewInstrumentedKeyGenerationService records key generation counts and durations around next.
func NewInstrumentedKeyGenerationService(next keys.KeyGenerationService, m *metrics.Metrics) keys.KeyGenerationService {
	return &instrumentedKeyGenerationService{next: next, metrics: m}
}

func (s *instrumentedKeyGenerationService) Generate(ctx context.Context, name, department string, keySize uint32) (*keys.GeneratedKey, error) {
	start := time.Now()
	generated, err := s.next.Generate(ctx, name, department, keySize)
	s.metrics.KeyGenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.KeyGenerationFailures.Inc()
		return nil, err
	}
	s.metrics.KeysGenerated.WithLabelValues(strconv.FormatUint(uint64(keySize), 10)).Inc()
	return generated, nil
}

type instrumentedSignatureService struct {
	next    keys.SignatureService
	metrics *metrics.Metrics
}

// NewInstrumentedSignatureService counts signatures and verification outcomes of next.
func NewInstrumentedSignatureService(next keys.SignatureService, m *metrics.Metrics) keys.SignatureService {
	return &instrumentedSignatureService{next: next, metrics: m}
}

func (s *instrumentedSignatureService) Sign(ctx context.Context, data []byte, privateKey string) (*big.Int, error) {
	signature, err := s.next.Sign(ctx, data, privateKey)
	if err != nil {
		s.metrics.SigningFailures.Inc()
		return nil, err
	}
	s.metrics.SignaturesCreated.Inc()
	return signature, nil
}

func (s *instrumentedSignatureService) Verify(ctx context.Context, data []byte, signature *big.Int, keyID, publicKey string) (*keys.VerificationResult, error) {
	result, err := s.next.Verify(ctx, data, signature, keyID, publicKey)
	switch {
	case err != nil:
		s.metrics.Verifications.WithLabelValues(metrics.VerificationError).Inc()
	case result.Valid:
		s.metrics.Verifications.WithLabelValues(metrics.VerificationValid).Inc()
	default:
		s.metrics.Verifications.WithLabelValues(metrics.VerificationInvalid).Inc()
	}
	return result, err
}

func (s *instrumentedSignatureService) Digest(data []byte) string {
	return s.next.Digest(data)
}
