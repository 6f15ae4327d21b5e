package memoria

// Traducción de direcciones. Todas las funciones son puras y usan división entera:
// el desplazamiento dentro de la página es el mismo en la dirección lógica y en la física,
// solo cambia el número de página por el de marco.

// DireccionLogica de v[offset]: los datos arrancan después de las páginas de código,
// no después de los bytes de código
func (t *Tarea) DireccionLogica(v Vector, offset int) int {
	return t.PaginasCodigo*t.params.TamPagina + v.Inicio + offset
}

// PaginaLogica devuelve el número de página de una dirección lógica
func (t *Tarea) PaginaLogica(dirLogica int) int {
	return dirLogica / t.params.TamPagina
}

// Desplazamiento devuelve la posición de una dirección dentro de su página
func (t *Tarea) Desplazamiento(dirLogica int) int {
	return dirLogica % t.params.TamPagina
}

// DireccionFisica traduce una dirección lógica usando la tabla de páginas.
// La página tiene que estar mapeada.
func (t *Tarea) DireccionFisica(dirLogica int) int {
	marco := t.TablaPaginas[t.PaginaLogica(dirLogica)]
	return marco*t.params.TamPagina + t.Desplazamiento(dirLogica)
}

// Marco devuelve el marco asignado a una página lógica
func (t *Tarea) Marco(pagina int) (int, bool) {
	if pagina < 0 || pagina >= len(t.TablaPaginas) {
		return 0, false
	}
	return t.TablaPaginas[pagina], true
}
