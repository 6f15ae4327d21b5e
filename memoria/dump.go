package memoria

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// Formatos de dump soportados
const (
	FormatoJSON = "json"
	FormatoCBOR = "cbor"
)

// modo canónico: el mismo reporte siempre produce los mismos bytes
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("memoria: no se pudo crear el modo CBOR: %v", err))
	}
	cborEncMode = em
}

// GuardarDump escribe el reporte de una tarea en dir como <tarea>-<timestamp>.<formato>
// y devuelve la ruta del archivo
func GuardarDump(dir, formato string, r *Reporte) (string, error) {
	var (
		contenido []byte
		err       error
	)
	switch formato {
	case FormatoJSON:
		contenido, err = json.MarshalIndent(r, "", "  ")
	case FormatoCBOR:
		contenido, err = cborEncMode.Marshal(r)
	default:
		return "", fmt.Errorf("formato de dump desconocido %q", formato)
	}
	if err != nil {
		return "", fmt.Errorf("error serializando dump de %s: %w", r.Tarea, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error al crear directorio para dumps: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	ruta := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", r.Tarea, timestamp, formato))

	if err := os.WriteFile(ruta, contenido, 0644); err != nil {
		return "", fmt.Errorf("error al escribir dump %s: %w", ruta, err)
	}

	utils.InfoLog.Info(fmt.Sprintf("## Tarea: %s - Dump generado", r.Tarea), "archivo", ruta, "bytes", len(contenido))
	return ruta, nil
}

// LeerDump decodifica un dump JSON o CBOR según su extensión
func LeerDump(ruta string) (*Reporte, error) {
	contenido, err := os.ReadFile(ruta)
	if err != nil {
		return nil, fmt.Errorf("error leyendo dump %s: %w", ruta, err)
	}

	var r Reporte
	switch strings.TrimPrefix(filepath.Ext(ruta), ".") {
	case FormatoCBOR:
		err = cbor.Unmarshal(contenido, &r)
	case FormatoJSON:
		err = json.Unmarshal(contenido, &r)
	default:
		return nil, fmt.Errorf("extensión de dump desconocida: %s", ruta)
	}
	if err != nil {
		return nil, fmt.Errorf("error decodificando dump %s: %w", ruta, err)
	}
	return &r, nil
}
