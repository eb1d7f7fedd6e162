package domain

import "time"

// Asignacion is one raw assignment row: a cod_luna placed into a campaign
// (identified by archivo) on a load date. DeudaVigente and MontoExigible are
// filled in once current debt has been matched against the cuenta.
type Asignacion struct {
	Cliente       string
	Cuenta        string
	CodLuna       int64
	Negocio       string
	Servicio      string
	MinVto        *time.Time
	TramoGestion  string
	Zona          string
	DecilContacto *int
	DecilPago     *int
	TipoLinea     string
	CodSistema    string
	Archivo       string
	FechaCarga    time.Time

	DeudaVigente  bool
	MontoExigible float64
}
