package agenda

// FindDuplicate procura outro agendamento com o mesmo CPF ou RENACH.
// O registro em edição (editingID) é ignorado; a busca é linear.
func FindDuplicate(list []Appointment, cpf, renach, editingID string) error {
	for _, app := range list {
		if app.ID == editingID && editingID != "" {
			continue
		}
		if app.CPF != cpf && app.Renach != renach {
			continue
		}
		field := "RENACH"
		if app.CPF == cpf {
			field = "CPF"
		}
		return &DuplicateFieldError{Field: field, ConflictID: app.ID, ConflictName: app.FullName}
	}
	return nil
}
