package usecase

import (
	"context"
	"time"

	"github.com/allisson/pib/internal/metrics"
	"github.com/allisson/pib/internal/ndn"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
)

// pibUseCaseWithMetrics decorates PibUseCase with metrics instrumentation.
type pibUseCaseWithMetrics struct {
	next    PibUseCase
	metrics metrics.BusinessMetrics
}

// NewPibUseCaseWithMetrics wraps a PibUseCase with metrics recording.
func NewPibUseCaseWithMetrics(useCase PibUseCase, m metrics.BusinessMetrics) PibUseCase {
	return &pibUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// observe records one operation's count and duration with its status.
func (p *pibUseCaseWithMetrics) observe(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.metrics.RecordOperation(ctx, "pib", operation, status)
	p.metrics.RecordDuration(ctx, "pib", operation, time.Since(start), status)
}

func (p *pibUseCaseWithMetrics) IdentityExists(ctx context.Context, identityName ndn.Name) (bool, error) {
	start := time.Now()
	exists, err := p.next.IdentityExists(ctx, identityName)
	p.observe(ctx, "identity_exists", start, err)
	return exists, err
}

func (p *pibUseCaseWithMetrics) AddIdentity(ctx context.Context, identityName ndn.Name) error {
	start := time.Now()
	err := p.next.AddIdentity(ctx, identityName)
	p.observe(ctx, "identity_add", start, err)
	return err
}

func (p *pibUseCaseWithMetrics) SetDefaultIdentity(ctx context.Context, identityName ndn.Name) error {
	start := time.Now()
	err := p.next.SetDefaultIdentity(ctx, identityName)
	p.observe(ctx, "identity_set_default", start, err)
	return err
}

func (p *pibUseCaseWithMetrics) DefaultIdentity(ctx context.Context) (ndn.Name, error) {
	start := time.Now()
	name, err := p.next.DefaultIdentity(ctx)
	p.observe(ctx, "identity_get_default", start, err)
	return name, err
}

func (p *pibUseCaseWithMetrics) DeleteIdentity(ctx context.Context, identityName ndn.Name) error {
	start := time.Now()
	err := p.next.DeleteIdentity(ctx, identityName)
	p.observe(ctx, "identity_delete", start, err)
	return err
}

func (p *pibUseCaseWithMetrics) KeyExists(ctx context.Context, keyName ndn.Name) (bool, error) {
	start := time.Now()
	exists, err := p.next.KeyExists(ctx, keyName)
	p.observe(ctx, "key_exists", start, err)
	return exists, err
}

func (p *pibUseCaseWithMetrics) AddKey(
	ctx context.Context,
	keyName ndn.Name,
	keyType pibDomain.KeyType,
	publicKey []byte,
) error {
	start := time.Now()
	err := p.next.AddKey(ctx, keyName, keyType, publicKey)
	p.observe(ctx, "key_add", start, err)
	return err
}

func (p *pibUseCaseWithMetrics) Key(ctx context.Context, keyName ndn.Name) ([]byte, error) {
	start := time.Now()
	publicKey, err := p.next.Key(ctx, keyName)
	p.observe(ctx, "key_get", start, err)
	return publicKey, err
}

func (p *pibUseCaseWithMetrics) UpdateKeyStatus(ctx context.Context, keyName ndn.Name, isActive bool) error {
	start := time.Now()
	err := p.next.UpdateKeyStatus(ctx, keyName, isActive)
	p.observe(ctx, "key_update_status", start, err)
	return err
}

func (p *pibUseCaseWithMetrics) SetDefaultKey(ctx context.Context, keyName, identityCheck ndn.Name) error {
	start := time.Now()
	err := p.next.SetDefaultKey(ctx, keyName, identityCheck)
	p.observe(ctx, "key_set_default", start, err)
	return err
}

func (p *pibUseCaseWithMetrics) DefaultKeyName(ctx context.Context, identityName ndn.Name) (ndn.Name, error) {
	start := time.Now()
	name, err := p.next.DefaultKeyName(ctx, identityName)
	p.observe(ctx, "key_get_default", start, err)
	return name, err
}

func (p *pibUseCaseWithMetrics) ListKeyNames(
	ctx context.Context,
	identityName ndn.Name,
	isDefault bool,
) ([]ndn.Name, error) {
	start := time.Now()
	names, err := p.next.ListKeyNames(ctx, identityName, isDefault)
	p.observe(ctx, "key_list", start, err)
	return names, err
}

func (p *pibUseCaseWithMetrics) DeleteKey(ctx context.Context, keyName ndn.Name) error {
	start := time.Now()
	err := p.next.DeleteKey(ctx, keyName)
	p.observe(ctx, "key_delete", start, err)
	return err
}

func (p *pibUseCaseWithMetrics) CertificateExists(ctx context.Context, certificateName ndn.Name) (bool, error) {
	start := time.Now()
	exists, err := p.next.CertificateExists(ctx, certificateName)
	p.observe(ctx, "certificate_exists", start, err)
	return exists, err
}

func (p *pibUseCaseWithMetrics) AddCertificate(ctx context.Context, cert *ndn.Certificate) error {
	start := time.Now()
	err := p.next.AddCertificate(ctx, cert)
	p.observe(ctx, "certificate_add", start, err)
	return err
}

func (p *pibUseCaseWithMetrics) Certificate(
	ctx context.Context,
	certificateName ndn.Name,
	allowAny bool,
) (*ndn.Certificate, error) {
	start := time.Now()
	cert, err := p.next.Certificate(ctx, certificateName, allowAny)
	p.observe(ctx, "certificate_get", start, err)
	return cert, err
}

func (p *pibUseCaseWithMetrics) SetDefaultCertificate(ctx context.Context, keyName, certificateName ndn.Name) error {
	start := time.Now()
	err := p.next.SetDefaultCertificate(ctx, keyName, certificateName)
	p.observe(ctx, "certificate_set_default", start, err)
	return err
}

func (p *pibUseCaseWithMetrics) DefaultCertificateName(ctx context.Context, keyName ndn.Name) (ndn.Name, error) {
	start := time.Now()
	name, err := p.next.DefaultCertificateName(ctx, keyName)
	p.observe(ctx, "certificate_get_default", start, err)
	return name, err
}

func (p *pibUseCaseWithMetrics) DeleteCertificate(ctx context.Context, certificateName ndn.Name) error {
	start := time.Now()
	err := p.next.DeleteCertificate(ctx, certificateName)
	p.observe(ctx, "certificate_delete", start, err)
	return err
}
