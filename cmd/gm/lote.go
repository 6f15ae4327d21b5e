package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sisoputnfrba/gestor-memoria/memoria"
	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// ejecutarLocal procesa las tareas en este proceso, con un pool de marcos propio
func ejecutarLocal(config memoria.Config, fuente memoria.FuenteTareas, tareas []string, stdout io.Writer, negrita bool) error {
	pool, err := memoria.NuevoPoolMarcos(config.MarcoInicial, config.MarcoFinal)
	if err != nil {
		return err
	}
	gestor := memoria.NuevoGestor(config.Parametros(), pool, fuente)

	var historial *memoria.Historial
	if config.HistorialPath != "" {
		historial, err = memoria.AbrirHistorial(config.HistorialPath)
		if err != nil {
			return err
		}
		defer historial.Close()
	}

	for _, res := range gestor.ProcesarLote(tareas) {
		if historial != nil {
			if err := historial.Registrar(res); err != nil {
				utils.ErrorLog.Error("No se pudo registrar la ejecución", "tarea", res.Nombre, "error", err)
			}
		}

		if res.Err != nil {
			fmt.Fprintf(stdout, "\n%s\n", res.Err)
			continue
		}

		reporte := memoria.GenerarReporte(res.Tarea)
		if err := memoria.EscribirReporte(stdout, reporte, negrita); err != nil {
			return fmt.Errorf("error escribiendo reporte de %s: %w", res.Nombre, err)
		}

		if config.DumpPath != "" {
			if _, err := memoria.GuardarDump(config.DumpPath, config.DumpFormato, reporte); err != nil {
				utils.ErrorLog.Error("Error creando dump", "tarea", res.Nombre, "error", err)
			}
		}
	}

	m := gestor.Metricas()
	utils.InfoLog.Info(fmt.Sprintf("## Fin de la corrida - Ejecutadas;%d;Fallidas;%d;MarcosReservados;%d;MarcosLibres;%d",
		m.TareasProcesadas, m.TareasFallidas, m.MarcosReservados, pool.Libres()))
	return nil
}

// ejecutarRemoto lee los scripts localmente y los ejecuta en el servidor de memoria,
// que es quien tiene el pool de marcos
func ejecutarRemoto(ctx context.Context, direccion string, fuente memoria.FuenteTareas, tareas []string, stdout io.Writer, negrita bool) error {
	cliente := utils.NewHTTPClientURL("http://"+direccion, "GM")
	if err := cliente.VerificarConexion(); err != nil {
		return err
	}

	for _, nombre := range tareas {
		lineas, err := memoria.LeerLineas(fuente, nombre)
		if err != nil {
			fmt.Fprintf(stdout, "\n%s\n", err)
			continue
		}

		var respuesta memoria.RespuestaEjecucion
		datos := map[string]interface{}{"nombre": nombre, "lineas": lineas}
		if err := cliente.EnviarHTTPMensajeContexto(ctx, utils.MensajeEjecutarTarea, "default", datos, &respuesta); err != nil {
			return fmt.Errorf("error ejecutando %s en %s: %w", nombre, direccion, err)
		}

		if respuesta.Error != "" || respuesta.Reporte == nil {
			utils.InfoLog.Info("Tarea rechazada por el servidor", "tarea", nombre, "tipo", respuesta.Tipo)
			fmt.Fprintf(stdout, "\n%s\n", respuesta.Error)
			continue
		}

		if err := memoria.EscribirReporte(stdout, respuesta.Reporte, negrita); err != nil {
			return fmt.Errorf("error escribiendo reporte de %s: %w", nombre, err)
		}
	}
	return nil
}
