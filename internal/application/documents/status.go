package documents

import "github.com/nexwms/warehouse-api/internal/domain/entity"

// canTransition define la máquina de estados documental:
// draft -> ready -> done, con cancelación posible antes de done.
func canTransition(from, to string) bool {
	switch to {
	case entity.DocumentStatusReady:
		return from == entity.DocumentStatusDraft
	case entity.DocumentStatusDone:
		return from == entity.DocumentStatusReady
	case entity.DocumentStatusCancelled:
		return from == entity.DocumentStatusDraft || from == entity.DocumentStatusReady
	}
	return false
}
