package memoria

// Vector es un rango con nombre dentro de la región de datos de una tarea.
// Inicio es el desplazamiento dentro de la región de datos al momento de declararlo.
type Vector struct {
	Nombre  string
	Tamanio int
	Inicio  int
}

// AccesoMemoria registra un acceso válido Vector[Posicion]
type AccesoMemoria struct {
	Vector   string
	Posicion int
}

// Tarea es el modelo de memoria de un programa simulado: el código ocupa [0, MemoriaCodigo)
// y los datos arrancan en el primer límite de página después del código.
type Tarea struct {
	Nombre        string
	MemoriaCodigo int
	MemoriaDatos  int

	Vectores []Vector
	Accesos  []AccesoMemoria

	PaginasCodigo int
	PaginasDatos  int
	TablaPaginas  []int // página lógica -> marco

	params Parametros
}

// NuevaTarea crea una tarea vacía con el tamaño de código declarado en el encabezado
func NuevaTarea(nombre string, memoriaCodigo int, p Parametros) (*Tarea, error) {
	if memoriaCodigo > p.MaxMemoriaTarea {
		return nil, errorTarea(nombre, ErrEncabezadoExcedeMemoria,
			"La tarea %s excedió el límite de memoria de %dKB.", nombre, p.MaxMemoriaTarea/1024)
	}
	return &Tarea{Nombre: nombre, MemoriaCodigo: memoriaCodigo, params: p}, nil
}

// DeclararVector agrega un vector al final de la región de datos
func (t *Tarea) DeclararVector(nombre string, tamanio int) error {
	// restando no hay desborde aunque tamanio esté cerca de MaxInt
	if tamanio > t.params.MaxMemoriaTarea-t.MemoriaCodigo-t.MemoriaDatos {
		return errorTarea(t.Nombre, ErrLimiteMemoria,
			"La tarea %s excedió el límite de memoria de %dKB.", t.Nombre, t.params.MaxMemoriaTarea/1024)
	}
	if _, existe := t.BuscarVector(nombre); existe {
		return errorTarea(t.Nombre, ErrVectorDuplicado,
			"La tarea %s intentó asignar memoria nuevamente para un vector que ya existe (%s).", t.Nombre, nombre)
	}

	t.Vectores = append(t.Vectores, Vector{Nombre: nombre, Tamanio: tamanio, Inicio: t.MemoriaDatos})
	t.MemoriaDatos += tamanio
	return nil
}

// BuscarVector busca un vector por nombre exacto; gana el primero declarado
func (t *Tarea) BuscarVector(nombre string) (Vector, bool) {
	for _, v := range t.Vectores {
		if v.Nombre == nombre {
			return v, true
		}
	}
	return Vector{}, false
}

// RegistrarAcceso valida y registra un acceso nombre[posicion]. Es el único control de límites.
func (t *Tarea) RegistrarAcceso(nombre string, posicion int) error {
	v, existe := t.BuscarVector(nombre)
	if !existe {
		return errorTarea(t.Nombre, ErrVectorInexistente,
			"La tarea %s intentó acceder a una variable que no existe (%s).", t.Nombre, nombre)
	}
	if posicion < 0 || posicion >= v.Tamanio {
		return errorTarea(t.Nombre, ErrAccesoFueraDeRango,
			"La tarea %s intentó realizar un acceso inválido a la memoria %s[%d].", t.Nombre, nombre, posicion)
	}

	t.Accesos = append(t.Accesos, AccesoMemoria{Vector: nombre, Posicion: posicion})
	return nil
}

// Finalizar calcula las páginas de código y de datos una vez consumidas todas las instrucciones
func (t *Tarea) Finalizar() error {
	t.PaginasCodigo = t.params.calcularNumeroPaginas(t.MemoriaCodigo)
	t.PaginasDatos = t.params.calcularNumeroPaginas(t.MemoriaDatos)

	if maximo := t.params.MaxPaginasLogicas(); t.TotalPaginas() > maximo {
		return errorTarea(t.Nombre, ErrLimitePaginasLogicas,
			"La tarea %s excedió el límite de %d páginas lógicas.", t.Nombre, maximo)
	}
	return nil
}

// TotalPaginas devuelve la cantidad de páginas lógicas de la tarea
func (t *Tarea) TotalPaginas() int {
	return t.PaginasCodigo + t.PaginasDatos
}

// TamPagina devuelve el tamaño de página con el que se interpretó la tarea
func (t *Tarea) TamPagina() int {
	return t.params.TamPagina
}
