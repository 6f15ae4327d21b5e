package memoria

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FuenteTareas entrega el script de una tarea. El gestor cierra lo que devuelve Abrir
// exactamente una vez.
type FuenteTareas interface {
	Abrir(nombre string) (io.ReadCloser, error)
}

// DirectorioTareas lee los scripts desde <Dir>/<nombre><Extension>
type DirectorioTareas struct {
	Dir       string
	Extension string
}

// Ruta devuelve el archivo que corresponde a una tarea
func (d DirectorioTareas) Ruta(nombre string) string {
	return filepath.Join(d.Dir, nombre+d.Extension)
}

func (d DirectorioTareas) Abrir(nombre string) (io.ReadCloser, error) {
	return os.Open(d.Ruta(nombre))
}

// TareasEnMemoria es una fuente con los scripts ya cargados, indexados por nombre
type TareasEnMemoria map[string]string

func (m TareasEnMemoria) Abrir(nombre string) (io.ReadCloser, error) {
	script, existe := m[nombre]
	if !existe {
		return nil, fmt.Errorf("no existe la tarea %s: %w", nombre, os.ErrNotExist)
	}
	return io.NopCloser(strings.NewReader(script)), nil
}

// LeerLineas carga todas las líneas de una tarea, p. ej. para enviarlas al servidor de memoria
func LeerLineas(fuente FuenteTareas, nombre string) ([]string, error) {
	rc, err := fuente.Abrir(nombre)
	if err != nil {
		return nil, errorApertura(nombre, err)
	}
	defer rc.Close()

	contenido, err := io.ReadAll(rc)
	if err != nil {
		return nil, errorLectura(nombre, err)
	}

	texto := strings.ReplaceAll(string(contenido), "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(texto, "\n"), "\n"), nil
}

func errorApertura(nombre string, causa error) error {
	e := errorTarea(nombre, ErrArchivoNoDisponible, "Error al abrir el archivo de la tarea %s: %v", nombre, causa)
	e.Causa = causa
	return e
}
