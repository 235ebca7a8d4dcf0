package dukcapil

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nusabank/onboarding-api/pkg/logger"
)

// dateLayout formato de fecha que espera el servicio Dukcapil (ISO, solo fecha).
const dateLayout = "2006-01-02"

// KTPData payload estructurado del KTP devuelto por Dukcapil cuando la
// verificación es exitosa. Los nombres de campo son los del contrato Dukcapil.
type KTPData struct {
	FullName   string `json:"namaLengkap"`
	BirthPlace string `json:"tempatLahir"`
	BirthDate  string `json:"tanggalLahir"` // YYYY-MM-DD; puede venir vacío
	Gender     string `json:"jenisKelamin"`
	Religion   string `json:"agama"`
}

// VerificationOutcome resultado de la verificación de identidad.
// Data solo está presente cuando Valid es true y Dukcapil devolvió el KTP.
type VerificationOutcome struct {
	Valid   bool     `json:"valid"`
	Message string   `json:"message"`
	Data    *KTPData `json:"data,omitempty"`
}

// verifyRequest cuerpo del endpoint de verificación (contrato Dukcapil).
type verifyRequest struct {
	NIK       string `json:"nik"`
	FullName  string `json:"namaLengkap"`
	BirthDate string `json:"tanggalLahir"`
}

type checkRequest struct {
	NIK string `json:"nik"`
}

type checkResponse struct {
	Exists bool `json:"exists"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Client cliente HTTP hacia el servicio Dukcapil. Todas las llamadas son
// síncronas y con timeout acotado; no hay reintentos aquí (la política de
// reintento, si existe, es del orquestador).
type Client struct {
	http           *resty.Client
	baseURL        string
	verifyEndpoint string
	checkEndpoint  string
	log            *logger.Logger
}

// NewClient construye el cliente con timeout de red acotado. El servicio
// Dukcapil puede colgarse: sin timeout una registración quedaría bloqueada.
func NewClient(baseURL, verifyEndpoint, checkEndpoint string, timeout time.Duration, log *logger.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "onboarding-api/1.0")

	return &Client{
		http:           http,
		baseURL:        baseURL,
		verifyEndpoint: verifyEndpoint,
		checkEndpoint:  checkEndpoint,
		log:            log,
	}
}

// VerifyIdentity verifica NIK + nombre completo + fecha de nacimiento contra
// Dukcapil. Nunca retorna error: cualquier fallo de transporte, 4xx o 5xx se
// convierte en un resultado negativo con mensaje descriptivo, de modo que el
// orquestador tiene una sola rama de decisión.
func (c *Client) VerifyIdentity(ctx context.Context, nik, fullName string, birthDate time.Time) *VerificationOutcome {
	var out VerificationOutcome

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(verifyRequest{
			NIK:       nik,
			FullName:  fullName,
			BirthDate: birthDate.Format(dateLayout),
		}).
		SetResult(&out).
		Post(c.verifyEndpoint)

	if err != nil {
		c.log.Error().Err(err).Str("base_url", c.baseURL).Msg("Dukcapil inaccesible en verificación")
		return &VerificationOutcome{
			Valid:   false,
			Message: fmt.Sprintf("Layanan Dukcapil tidak dapat diakses. Pastikan layanan berjalan di %s", c.baseURL),
		}
	}

	if resp.IsError() {
		c.log.Error().Int("status", resp.StatusCode()).Msg("Dukcapil respondió error en verificación")
		if resp.StatusCode() >= 500 {
			return &VerificationOutcome{Valid: false, Message: "Layanan Dukcapil mengalami error internal"}
		}
		return &VerificationOutcome{Valid: false, Message: "Error validasi dari layanan Dukcapil: " + string(resp.Body())}
	}

	c.log.Debug().Bool("valid", out.Valid).Msg("respuesta de verificación Dukcapil")
	return &out
}

// NIKExists consulta la existencia cruda de un NIK en Dukcapil.
// Retorna false ante cualquier fallo: es una señal consultiva, no una
// garantía de unicidad.
func (c *Client) NIKExists(ctx context.Context, nik string) bool {
	var out checkResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(checkRequest{NIK: nik}).
		SetResult(&out).
		Post(c.checkEndpoint)

	if err != nil || resp.IsError() {
		c.log.Error().Err(err).Msg("fallo consultando existencia de NIK en Dukcapil")
		return false
	}
	return out.Exists
}

// IsHealthy consulta el health endpoint de Dukcapil. Retorna false ante
// cualquier fallo; se usa como gate previo al registro.
func (c *Client) IsHealthy(ctx context.Context) bool {
	var out healthResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/health")

	if err != nil || resp.IsError() {
		c.log.Error().Err(err).Msg("health check de Dukcapil falló")
		return false
	}
	return out.Status == "OK"
}

// BaseURL devuelve la URL base configurada (para estadísticas y debugging).
func (c *Client) BaseURL() string {
	return c.baseURL
}
