package memoria

import (
	"bufio"
	"fmt"
	"io"
)

const (
	negritaInicio = "\033[1m"
	negritaFin    = "\033[0m"
)

// Ubicacion es una dirección junto con su par página:desplazamiento.
// En una ubicación física Pagina es el número de marco.
type Ubicacion struct {
	Direccion      int `json:"direccion" cbor:"direccion"`
	Pagina         int `json:"pagina" cbor:"pagina"`
	Desplazamiento int `json:"desplazamiento" cbor:"desplazamiento"`
}

// ReporteVector describe el rango lógico y físico que ocupa un vector
type ReporteVector struct {
	Nombre       string    `json:"nombre" cbor:"nombre"`
	Tamanio      int       `json:"tamanio" cbor:"tamanio"`
	Vacio        bool      `json:"vacio,omitempty" cbor:"vacio,omitempty"`
	LogicoInicio Ubicacion `json:"logico_inicio" cbor:"logico_inicio"`
	LogicoFin    Ubicacion `json:"logico_fin" cbor:"logico_fin"`
	FisicoInicio Ubicacion `json:"fisico_inicio" cbor:"fisico_inicio"`
	FisicoFin    Ubicacion `json:"fisico_fin" cbor:"fisico_fin"`
}

// ReporteAcceso describe la traducción de un acceso
type ReporteAcceso struct {
	Vector   string    `json:"vector" cbor:"vector"`
	Posicion int       `json:"posicion" cbor:"posicion"`
	Logico   Ubicacion `json:"logico" cbor:"logico"`
	Fisico   Ubicacion `json:"fisico" cbor:"fisico"`
}

// EntradaTabla es una fila de la tabla de páginas con los rangos de bytes de la página y del marco
type EntradaTabla struct {
	PaginaLogica int `json:"pagina_logica" cbor:"pagina_logica"`
	LogicoInicio int `json:"logico_inicio" cbor:"logico_inicio"`
	LogicoFin    int `json:"logico_fin" cbor:"logico_fin"`
	Marco        int `json:"marco" cbor:"marco"`
	FisicoInicio int `json:"fisico_inicio" cbor:"fisico_inicio"`
	FisicoFin    int `json:"fisico_fin" cbor:"fisico_fin"`
}

// Reporte es el mapa de memoria de una tarea ya ejecutada
type Reporte struct {
	Tarea          string          `json:"tarea" cbor:"tarea"`
	PaginasLogicas int             `json:"paginas_logicas" cbor:"paginas_logicas"`
	Vectores       []ReporteVector `json:"vectores" cbor:"vectores"`
	Accesos        []ReporteAcceso `json:"accesos" cbor:"accesos"`
	TablaPaginas   []EntradaTabla  `json:"tabla_paginas" cbor:"tabla_paginas"`
}

// GenerarReporte recorre la tarea en el orden del informe: vectores en orden de declaración,
// accesos en orden de instrucción y la tabla por página lógica. No valida nada.
func GenerarReporte(t *Tarea) *Reporte {
	r := &Reporte{
		Tarea:          t.Nombre,
		PaginasLogicas: t.TotalPaginas(),
		Vectores:       make([]ReporteVector, 0, len(t.Vectores)),
		Accesos:        make([]ReporteAcceso, 0, len(t.Accesos)),
		TablaPaginas:   make([]EntradaTabla, 0, len(t.TablaPaginas)),
	}

	for _, v := range t.Vectores {
		rv := ReporteVector{Nombre: v.Nombre, Tamanio: v.Tamanio}
		inicio := t.DireccionLogica(v, 0)
		rv.LogicoInicio = t.ubicacionLogica(inicio)

		// un vector de tamaño 0 no ocupa ningún byte, así que no tiene rango físico
		if v.Tamanio == 0 {
			rv.Vacio = true
			rv.LogicoFin = rv.LogicoInicio
			r.Vectores = append(r.Vectores, rv)
			continue
		}

		fin := t.DireccionLogica(v, v.Tamanio-1)
		rv.LogicoFin = t.ubicacionLogica(fin)
		rv.FisicoInicio = t.ubicacionFisica(inicio)
		rv.FisicoFin = t.ubicacionFisica(fin)
		r.Vectores = append(r.Vectores, rv)
	}

	for _, a := range t.Accesos {
		v, _ := t.BuscarVector(a.Vector)
		dir := t.DireccionLogica(v, a.Posicion)
		r.Accesos = append(r.Accesos, ReporteAcceso{
			Vector:   a.Vector,
			Posicion: a.Posicion,
			Logico:   t.ubicacionLogica(dir),
			Fisico:   t.ubicacionFisica(dir),
		})
	}

	tam := t.params.TamPagina
	for pagina, marco := range t.TablaPaginas {
		r.TablaPaginas = append(r.TablaPaginas, EntradaTabla{
			PaginaLogica: pagina,
			LogicoInicio: pagina * tam,
			LogicoFin:    (pagina+1)*tam - 1,
			Marco:        marco,
			FisicoInicio: marco * tam,
			FisicoFin:    marco*tam + tam - 1,
		})
	}

	return r
}

func (t *Tarea) ubicacionLogica(dir int) Ubicacion {
	return Ubicacion{Direccion: dir, Pagina: t.PaginaLogica(dir), Desplazamiento: t.Desplazamiento(dir)}
}

func (t *Tarea) ubicacionFisica(dir int) Ubicacion {
	return Ubicacion{
		Direccion:      t.DireccionFisica(dir),
		Pagina:         t.TablaPaginas[t.PaginaLogica(dir)],
		Desplazamiento: t.Desplazamiento(dir),
	}
}

// EscribirReporte imprime el reporte en texto. negrita agrega los códigos ANSI de los títulos.
func EscribirReporte(w io.Writer, r *Reporte, negrita bool) error {
	bw := bufio.NewWriter(w)

	abrir, cerrar := "", ""
	if negrita {
		abrir, cerrar = negritaInicio, negritaFin
	}

	fmt.Fprintf(bw, "%s\n- Tarea: %s\n", abrir, r.Tarea)
	fmt.Fprintf(bw, "     - Memoria\n%s", cerrar)
	fmt.Fprintf(bw, "          Número de páginas lógicas = %d\n", r.PaginasLogicas)

	for _, v := range r.Vectores {
		fmt.Fprintf(bw, "\n          - %s\n", v.Nombre)
		if v.Vacio {
			fmt.Fprintf(bw, "          Direcciones Lógicas = vacío ( %d : %d )\n",
				v.LogicoInicio.Pagina, v.LogicoInicio.Desplazamiento)
			continue
		}
		fmt.Fprintf(bw, "          Direcciones Lógicas = %d a %d ( %d : %d a %d : %d )\n",
			v.LogicoInicio.Direccion, v.LogicoFin.Direccion,
			v.LogicoInicio.Pagina, v.LogicoInicio.Desplazamiento,
			v.LogicoFin.Pagina, v.LogicoFin.Desplazamiento)
		fmt.Fprintf(bw, "          Direcciones Físicas = %d a %d ( %d : %d a %d : %d )\n",
			v.FisicoInicio.Direccion, v.FisicoFin.Direccion,
			v.FisicoInicio.Pagina, v.FisicoInicio.Desplazamiento,
			v.FisicoFin.Pagina, v.FisicoFin.Desplazamiento)
	}

	for _, a := range r.Accesos {
		fmt.Fprintf(bw, "\n          - %s[%d]\n", a.Vector, a.Posicion)
		fmt.Fprintf(bw, "          Dirección Lógica = %d : %d\n", a.Logico.Pagina, a.Logico.Desplazamiento)
		fmt.Fprintf(bw, "          Dirección Física = %d : %d\n", a.Fisico.Pagina, a.Fisico.Desplazamiento)
	}

	fmt.Fprintf(bw, "\n          - Tabla de Páginas\n")
	for _, e := range r.TablaPaginas {
		fmt.Fprintf(bw, "               PL %d (%d a %d) --> PF %d (%d a %d)\n",
			e.PaginaLogica, e.LogicoInicio, e.LogicoFin, e.Marco, e.FisicoInicio, e.FisicoFin)
	}

	return bw.Flush()
}
