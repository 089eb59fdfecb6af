package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

// memStore estado compartido por los repositorios en memoria de los tests.
type memStore struct {
	tramites  map[string]*entity.Tramite
	historial []*entity.EtapaHistorial
	notifs    []*entity.Notificacion
	docs      map[string]*entity.Documento
	pagos     map[string]*entity.Pago
	mensajes  []*entity.Mensaje
	cuentas   map[string]*entity.CuentaBancaria // por tramiteID
	users     map[string]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		tramites: map[string]*entity.Tramite{},
		docs:     map[string]*entity.Documento{},
		pagos:    map[string]*entity.Pago{},
		cuentas:  map[string]*entity.CuentaBancaria{},
		users:    map[string]*entity.User{},
	}
}

func (s *memStore) addUser(role string) *entity.User {
	u := &entity.User{
		ID:     uuid.New().String(),
		Email:  uuid.New().String() + "@test.com",
		Name:   "Usuario " + role,
		Role:   role,
		Status: "active",
	}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addTramite(userID, razonSocial string) *entity.Tramite {
	t := &entity.Tramite{
		ID:               uuid.New().String(),
		UserID:           userID,
		RazonSocial1:     razonSocial,
		Jurisdiccion:     entity.JurisdiccionCABA,
		CapitalSocial:    decimal.NewFromInt(300000),
		EstadoGeneral:    entity.EstadoIniciado,
		EstadoValidacion: entity.ValidacionPendiente,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	s.tramites[t.ID] = t
	return t
}

func (s *memStore) notifsDe(userID string) []*entity.Notificacion {
	var out []*entity.Notificacion
	for _, n := range s.notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// ── Repositorios en memoria ──────────────────────────────────────────────────

type memTramiteRepo struct{ s *memStore }

func (r *memTramiteRepo) Create(_ context.Context, t *entity.Tramite) error {
	r.s.tramites[t.ID] = t
	return nil
}

func (r *memTramiteRepo) GetByID(_ context.Context, id string) (*entity.Tramite, error) {
	return r.s.tramites[id], nil
}

func (r *memTramiteRepo) Update(_ context.Context, t *entity.Tramite) error {
	r.s.tramites[t.ID] = t
	return nil
}

func (r *memTramiteRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.Tramite, error) {
	var out []*entity.Tramite
	for _, t := range r.s.tramites {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTramiteRepo) Search(_ context.Context, f repository.TramiteFilter) ([]*entity.Tramite, int, error) {
	var out []*entity.Tramite
	for _, t := range r.s.tramites {
		if f.EstadoGeneral != "" && t.EstadoGeneral != f.EstadoGeneral {
			continue
		}
		if f.Texto != "" && !strings.Contains(strings.ToLower(t.RazonSocial1), strings.ToLower(f.Texto)) {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (r *memTramiteRepo) Delete(_ context.Context, id string) error {
	delete(r.s.tramites, id)
	return nil
}

type memHistorialRepo struct{ s *memStore }

func (r *memHistorialRepo) Create(_ context.Context, h *entity.EtapaHistorial) error {
	r.s.historial = append(r.s.historial, h)
	return nil
}

func (r *memHistorialRepo) ListByTramite(_ context.Context, tramiteID string) ([]*entity.EtapaHistorial, error) {
	var out []*entity.EtapaHistorial
	for _, h := range r.s.historial {
		if h.TramiteID == tramiteID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *memHistorialRepo) DeleteByTramite(_ context.Context, tramiteID string) error {
	var keep []*entity.EtapaHistorial
	for _, h := range r.s.historial {
		if h.TramiteID != tramiteID {
			keep = append(keep, h)
		}
	}
	r.s.historial = keep
	return nil
}

type memNotifRepo struct{ s *memStore }

func (r *memNotifRepo) Create(_ context.Context, n *entity.Notificacion) error {
	r.s.notifs = append(r.s.notifs, n)
	return nil
}

func (r *memNotifRepo) ListByUser(_ context.Context, userID string, soloNoLeidas bool, limit int) ([]*entity.Notificacion, error) {
	var out []*entity.Notificacion
	for _, n := range r.s.notifs {
		if n.UserID != userID {
			continue
		}
		if soloNoLeidas && n.Leida {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *memNotifRepo) CountNoLeidas(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range r.s.notifs {
		if n.UserID == userID && !n.Leida {
			count++
		}
	}
	return count, nil
}

func (r *memNotifRepo) MarcarLeida(_ context.Context, id, userID string) (int64, error) {
	for _, n := range r.s.notifs {
		if n.ID == id && n.UserID == userID {
			n.Leida = true
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memNotifRepo) MarcarTodasLeidas(_ context.Context, userID string) error {
	for _, n := range r.s.notifs {
		if n.UserID == userID {
			n.Leida = true
		}
	}
	return nil
}

func (r *memNotifRepo) DeleteByTramite(_ context.Context, tramiteID string) error {
	var keep []*entity.Notificacion
	for _, n := range r.s.notifs {
		if n.TramiteID != tramiteID {
			keep = append(keep, n)
		}
	}
	r.s.notifs = keep
	return nil
}

type memDocRepo struct{ s *memStore }

func (r *memDocRepo) Create(_ context.Context, d *entity.Documento) error {
	r.s.docs[d.ID] = d
	return nil
}

func (r *memDocRepo) GetByID(_ context.Context, id string) (*entity.Documento, error) {
	return r.s.docs[id], nil
}

func (r *memDocRepo) Update(_ context.Context, d *entity.Documento) error {
	r.s.docs[d.ID] = d
	return nil
}

func (r *memDocRepo) ListByTramite(_ context.Context, tramiteID string) ([]*entity.Documento, error) {
	var out []*entity.Documento
	for _, d := range r.s.docs {
		if d.TramiteID == tramiteID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDocRepo) DeleteByTramite(_ context.Context, tramiteID string) error {
	for id, d := range r.s.docs {
		if d.TramiteID == tramiteID {
			delete(r.s.docs, id)
		}
	}
	return nil
}

type memPagoRepo struct{ s *memStore }

func (r *memPagoRepo) Create(_ context.Context, p *entity.Pago) error {
	r.s.pagos[p.ID] = p
	return nil
}

func (r *memPagoRepo) GetByID(_ context.Context, id string) (*entity.Pago, error) {
	return r.s.pagos[id], nil
}

func (r *memPagoRepo) Update(_ context.Context, p *entity.Pago) error {
	r.s.pagos[p.ID] = p
	return nil
}

func (r *memPagoRepo) ListByTramite(_ context.Context, tramiteID string) ([]*entity.Pago, error) {
	var out []*entity.Pago
	for _, p := range r.s.pagos {
		if p.TramiteID == tramiteID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPagoRepo) GetPendienteByReferencia(_ context.Context, referencia string) (*entity.Pago, error) {
	for _, p := range r.s.pagos {
		if p.ReferenciaExterna == referencia &&
			(p.Estado == entity.PagoPendiente || p.Estado == entity.PagoProcesando) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPagoRepo) DeleteByTramite(_ context.Context, tramiteID string) error {
	for id, p := range r.s.pagos {
		if p.TramiteID == tramiteID {
			delete(r.s.pagos, id)
		}
	}
	return nil
}

type memMensajeRepo struct{ s *memStore }

func (r *memMensajeRepo) Create(_ context.Context, m *entity.Mensaje) error {
	r.s.mensajes = append(r.s.mensajes, m)
	return nil
}

func (r *memMensajeRepo) ListByTramite(_ context.Context, tramiteID string, _, _ int) ([]*entity.Mensaje, error) {
	var out []*entity.Mensaje
	for _, m := range r.s.mensajes {
		if m.TramiteID == tramiteID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMensajeRepo) MarcarLeidos(_ context.Context, tramiteID string, delStaff bool) error {
	for _, m := range r.s.mensajes {
		if m.TramiteID == tramiteID && m.EsStaff == delStaff {
			m.Leido = true
		}
	}
	return nil
}

func (r *memMensajeRepo) DeleteByTramite(_ context.Context, tramiteID string) error {
	var keep []*entity.Mensaje
	for _, m := range r.s.mensajes {
		if m.TramiteID != tramiteID {
			keep = append(keep, m)
		}
	}
	r.s.mensajes = keep
	return nil
}

type memCuentaRepo struct{ s *memStore }

func (r *memCuentaRepo) Create(_ context.Context, c *entity.CuentaBancaria) error {
	r.s.cuentas[c.TramiteID] = c
	return nil
}

func (r *memCuentaRepo) GetByTramite(_ context.Context, tramiteID string) (*entity.CuentaBancaria, error) {
	return r.s.cuentas[tramiteID], nil
}

func (r *memCuentaRepo) DeleteByTramite(_ context.Context, tramiteID string) error {
	delete(r.s.cuentas, tramiteID)
	return nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.s.users[id], nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.users[u.ID] = u
	return nil
}

func (r *memUserRepo) ListByRole(_ context.Context, role string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		if u.Role == role && u.Status == "active" {
			out = append(out, u)
		}
	}
	return out, nil
}

// ── TxRunner y adaptadores de salida falsos ──────────────────────────────────

// memTxRunner ejecuta el callback directo sobre los repos en memoria. No hay
// rollback real: los tests verifican que las operaciones que deben abortar
// antes de la transacción no dejen rastro.
type memTxRunner struct{ s *memStore }

func (tx *memTxRunner) Run(_ context.Context, fn func(r Repos) error) error {
	return fn(Repos{
		Tramites:       &memTramiteRepo{tx.s},
		Historial:      &memHistorialRepo{tx.s},
		Notificaciones: &memNotifRepo{tx.s},
		Documentos:     &memDocRepo{tx.s},
		Pagos:          &memPagoRepo{tx.s},
		Mensajes:       &memMensajeRepo{tx.s},
		Cuentas:        &memCuentaRepo{tx.s},
	})
}

// fakeStorage guarda las subidas en memoria; con fail=true simula una caída.
type fakeStorage struct {
	fail    bool
	subidas []string
}

func (f *fakeStorage) Upload(_ context.Context, _ []byte, folder, filename, _ string) (string, error) {
	if f.fail {
		return "", errors.New("storage no disponible")
	}
	url := "https://storage.test/" + folder + "/" + filename
	f.subidas = append(f.subidas, url)
	return url, nil
}

// fakeEmail acumula los envíos para inspección.
type fakeEmail struct {
	enviados []string // subjects
}

func (f *fakeEmail) Send(_, subject, _ string) error {
	f.enviados = append(f.enviados, subject)
	return nil
}

// fakeProvider responde lo que el test configure por ID de pago del gateway.
type fakeProvider struct {
	pagos map[string]*ProviderPayment
}

func (f *fakeProvider) GetPayment(_ context.Context, id string) (*ProviderPayment, error) {
	pp, ok := f.pagos[id]
	if !ok {
		return nil, errors.New("pago inexistente en el gateway")
	}
	return pp, nil
}
