package utils

import (
	"time"
)

// AplicarRetardo aplica un retardo simulado y lo registra
func AplicarRetardo(operacion string, duracionMs int) {
	if duracionMs <= 0 {
		return
	}
	InfoLog.Debug("Aplicando retardo", "operación", operacion, "duración_ms", duracionMs)
	time.Sleep(time.Duration(duracionMs) * time.Millisecond)
}

// DatosMensaje devuelve los datos del mensaje como mapa, tal como llegan decodificados de JSON
func DatosMensaje(msg *Mensaje) (map[string]interface{}, bool) {
	datos, ok := msg.Datos.(map[string]interface{})
	return datos, ok
}

// ExtraerString obtiene un campo string de los datos de un mensaje
func ExtraerString(datos map[string]interface{}, clave string) (string, bool) {
	valor, ok := datos[clave].(string)
	return valor, ok
}

// ExtraerLineas obtiene una lista de strings (JSON array) de los datos de un mensaje
func ExtraerLineas(datos map[string]interface{}, clave string) ([]string, bool) {
	crudo, ok := datos[clave].([]interface{})
	if !ok {
		return nil, false
	}

	lineas := make([]string, 0, len(crudo))
	for _, elemento := range crudo {
		linea, ok := elemento.(string)
		if !ok {
			return nil, false
		}
		lineas = append(lineas, linea)
	}
	return lineas, true
}
