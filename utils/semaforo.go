package utils

// Semaforo contador sobre un canal con buffer: cada lugar ocupado es un permiso tomado
type Semaforo struct {
	permisos chan struct{}
}

// NewSemaforo crea un semáforo con la capacidad dada (mínimo 1)
func NewSemaforo(capacidad int) *Semaforo {
	return &Semaforo{permisos: make(chan struct{}, max(capacidad, 1))}
}

// Wait (P) bloquea hasta conseguir un permiso
func (s *Semaforo) Wait() {
	s.permisos <- struct{}{}
}

// Signal (V) devuelve un permiso. Sin permisos tomados no hace nada.
func (s *Semaforo) Signal() {
	select {
	case <-s.permisos:
	default:
	}
}

// TryWait toma un permiso solo si hay uno libre
func (s *Semaforo) TryWait() bool {
	select {
	case s.permisos <- struct{}{}:
		return true
	default:
		return false
	}
}

// Ejecutar corre f con el semáforo tomado y lo libera al terminar, aunque f entre en pánico
func (s *Semaforo) Ejecutar(f func()) {
	s.Wait()
	defer s.Signal()
	f()
}
