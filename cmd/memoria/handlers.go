package main

import (
	"fmt"
	"strings"

	"github.com/sisoputnfrba/gestor-memoria/memoria"
	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// servidorMemoria expone un gestor con un único pool de marcos a todos los clientes
type servidorMemoria struct {
	config    memoria.Config
	gestor    *memoria.Gestor
	turno     *utils.Semaforo // una tarea por vez: los marcos se asignan por orden de llegada
	historial *memoria.Historial
}

func nuevoServidorMemoria(config memoria.Config) (*servidorMemoria, error) {
	pool, err := memoria.NuevoPoolMarcos(config.MarcoInicial, config.MarcoFinal)
	if err != nil {
		return nil, err
	}

	s := &servidorMemoria{
		config: config,
		gestor: memoria.NuevoGestor(config.Parametros(), pool,
			memoria.DirectorioTareas{Dir: config.TareasPath, Extension: config.ExtensionTarea}),
		turno: utils.NewSemaforo(1),
	}

	if config.HistorialPath != "" {
		s.historial, err = memoria.AbrirHistorial(config.HistorialPath)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *servidorMemoria) registrarHandlers(modulo *utils.Modulo) {
	modulo.RegistrarHandler(utils.MensajeHandshake, "handshake", s.handlerHandshake)
	modulo.RegistrarHandler(utils.MensajeHandshake, "default", s.handlerHandshake)
	modulo.RegistrarHandler(utils.MensajeEjecutarTarea, "default", s.handlerEjecutarTarea)
	modulo.RegistrarHandler(utils.MensajeEstadoMarcos, "default", s.handlerEstadoMarcos)

	utils.InfoLog.Info("Handlers registrados correctamente")
}

// Handler para handshake
func (s *servidorMemoria) handlerHandshake(msg *utils.Mensaje) (interface{}, error) {
	utils.InfoLog.Info("Handshake recibido", "origen", msg.Origen)

	return memoria.RespuestaHandshake{
		Status:          "OK",
		TamPagina:       s.config.TamPagina,
		MaxMemoriaTarea: s.config.MaxMemoriaTarea,
		MarcosTotales:   s.gestor.Pool().Total(),
	}, nil
}

// handlerEjecutarTarea interpreta una tarea y le asigna marcos. Si el mensaje trae las líneas
// se usan esas; si no, el script se lee de TAREAS_PATH.
func (s *servidorMemoria) handlerEjecutarTarea(msg *utils.Mensaje) (interface{}, error) {
	datos, ok := utils.DatosMensaje(msg)
	if !ok {
		utils.ErrorLog.Error("Formato de datos incorrecto", "datos", msg.Datos)
		return memoria.RespuestaEjecucion{Error: "Formato de datos incorrecto"}, nil
	}

	nombre, ok := utils.ExtraerString(datos, "nombre")
	if !ok || nombre == "" {
		utils.ErrorLog.Error("Nombre de tarea no proporcionado", "datos", datos)
		return memoria.RespuestaEjecucion{Error: "Nombre de tarea no proporcionado o formato incorrecto"}, nil
	}

	var (
		tarea *memoria.Tarea
		err   error
	)

	_, traeLineas := datos["lineas"]
	lineas, ok := utils.ExtraerLineas(datos, "lineas")
	if traeLineas && !ok {
		return memoria.RespuestaEjecucion{Error: fmt.Sprintf("Las líneas de la tarea %s no tienen formato correcto", nombre)}, nil
	}

	utils.InfoLog.Info("Solicitud de ejecución de tarea", "origen", msg.Origen, "tarea", nombre, "lineas", len(lineas))
	utils.AplicarRetardo("ejecutar_tarea", s.config.RetardoMemoria)

	s.turno.Ejecutar(func() {
		if traeLineas {
			tarea, err = s.gestor.Procesar(nombre, strings.NewReader(strings.Join(lineas, "\n")))
		} else {
			tarea, err = s.gestor.ProcesarTarea(nombre)
		}

		if s.historial != nil {
			if errHist := s.historial.Registrar(memoria.Resultado{Nombre: nombre, Tarea: tarea, Err: err}); errHist != nil {
				utils.ErrorLog.Error("No se pudo registrar la ejecución", "tarea", nombre, "error", errHist)
			}
		}
	})

	return memoria.NuevaRespuestaEjecucion(tarea, err), nil
}

func (s *servidorMemoria) handlerEstadoMarcos(msg *utils.Mensaje) (interface{}, error) {
	pool := s.gestor.Pool()
	libres := pool.Libres()

	utils.InfoLog.Info("Estado de marcos consultado", "origen", msg.Origen, "marcos_libres", libres)

	return memoria.RespuestaEstadoMarcos{
		Status:         "OK",
		MarcosLibres:   libres,
		MarcosTotales:  pool.Total(),
		MarcosOcupados: pool.Total() - libres,
		Metricas:       s.gestor.Metricas(),
	}, nil
}

func (s *servidorMemoria) cerrar() error {
	if s.historial != nil {
		return s.historial.Close()
	}
	return nil
}
