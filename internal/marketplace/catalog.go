package marketplace

import "github.com/Leganyst/myhaircut/internal/model"

// Правки каталога мастера. Каждая операция заменяет список целиком через upsert.

func (st *State) addService(providerID string, svc model.Service) (upsertResult, bool) {
	p, ok := st.member(providerID)
	if !ok {
		return upsertResult{}, false
	}
	services := append(append([]model.Service{}, p.Services...), svc)
	return st.upsert(accountPatch{ID: providerID, Services: &services}), true
}

func (st *State) removeService(providerID, serviceID string) (upsertResult, bool) {
	p, ok := st.member(providerID)
	if !ok {
		return upsertResult{}, false
	}
	services := make([]model.Service, 0, len(p.Services))
	for _, s := range p.Services {
		if s.ID != serviceID {
			services = append(services, s)
		}
	}
	if len(services) == len(p.Services) {
		return upsertResult{}, false
	}
	return st.upsert(accountPatch{ID: providerID, Services: &services}), true
}

func (st *State) addGalleryImage(providerID, ref string) (upsertResult, bool) {
	p, ok := st.member(providerID)
	if !ok {
		return upsertResult{}, false
	}
	gallery := append(append([]string{}, p.Gallery...), ref)
	return st.upsert(accountPatch{ID: providerID, Gallery: &gallery}), true
}

// removeGalleryImage удаляет изображение по позиции: дубликаты допустимы,
// поэтому ссылка сама по себе элемент не идентифицирует.
func (st *State) removeGalleryImage(providerID string, index int) (upsertResult, bool) {
	p, ok := st.member(providerID)
	if !ok || index < 0 || index >= len(p.Gallery) {
		return upsertResult{}, false
	}
	gallery := make([]string, 0, len(p.Gallery)-1)
	gallery = append(gallery, p.Gallery[:index]...)
	gallery = append(gallery, p.Gallery[index+1:]...)
	return st.upsert(accountPatch{ID: providerID, Gallery: &gallery}), true
}
