package style

// StyleType is one variant of a group, such as "light" or "dark". The zero
// value is an empty type ready to use.
type StyleType struct {
	Name string
	Code string

	table *VariableTable
}

// NewStyleType creates a style type holding vars.
func NewStyleType(name, code string, vars []Variable) *StyleType {
	return &StyleType{
		Name:  name,
		Code:  code,
		table: NewVariableTable(vars),
	}
}

func (st *StyleType) vars() *VariableTable {
	if st.table == nil {
		st.table = &VariableTable{}
	}
	return st.table
}

// GetAll returns the type's variables in insertion order.
func (st *StyleType) GetAll() []Variable {
	return st.vars().GetAll()
}

// Get returns the variable stored at code.
func (st *StyleType) Get(code string) (Variable, bool) {
	return st.vars().Get(code)
}

// Create inserts or replaces the variable at code.
func (st *StyleType) Create(name, code, value string) {
	st.vars().Create(name, code, value)
}

// Delete removes the variable at code, if any.
func (st *StyleType) Delete(code string) {
	st.vars().Delete(code)
}

// Change sets the value of an existing variable. It returns an error
// wrapping ErrNotFound when code is absent.
func (st *StyleType) Change(code, value string) error {
	return st.vars().Change(code, value)
}

// Len reports the number of variables in the type.
func (st *StyleType) Len() int {
	return st.vars().Len()
}
