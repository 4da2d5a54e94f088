package users

// User é o registro persistido na tabela Users. Todos os campos, exceto o ID,
// são informados pelo cliente; o ID é gerado na criação e nunca muda.
type User struct {
	ID       string `json:"id" dynamodbav:"id" redis:"id"`
	Lastname string `json:"lastname" dynamodbav:"lastname" redis:"lastname"`
	DOB      string `json:"dob" dynamodbav:"dob" redis:"dob"`
	Address  string `json:"address" dynamodbav:"address" redis:"address"`
	Gender   string `json:"gender" dynamodbav:"gender" redis:"gender"`
	Email    string `json:"email" dynamodbav:"email" redis:"email"`
	PhoneNo  string `json:"phone_no" dynamodbav:"phone_no" redis:"phone_no"`
}

// Field identifica um atributo atualizável do User pelo seu nome na tabela.
type Field string

const (
	FieldLastname Field = "lastname"
	FieldDOB      Field = "dob"
	FieldAddress  Field = "address"
	FieldGender   Field = "gender"
	FieldEmail    Field = "email"
	FieldPhoneNo  Field = "phone_no"
)

// Fields lista os atributos atualizáveis na ordem em que são validados.
var Fields = []Field{FieldLastname, FieldDOB, FieldAddress, FieldGender, FieldEmail, FieldPhoneNo}

// Get devolve o valor atual do campo.
func (u User) Get(f Field) string {
	switch f {
	case FieldLastname:
		return u.Lastname
	case FieldDOB:
		return u.DOB
	case FieldAddress:
		return u.Address
	case FieldGender:
		return u.Gender
	case FieldEmail:
		return u.Email
	case FieldPhoneNo:
		return u.PhoneNo
	}
	return ""
}

// Apply sobrescreve somente os campos tocados pelo patch.
func (u *User) Apply(p Patch) {
	for _, f := range p.Touched() {
		v, _ := p.Get(f)
		switch f {
		case FieldLastname:
			u.Lastname = v
		case FieldDOB:
			u.DOB = v
		case FieldAddress:
			u.Address = v
		case FieldGender:
			u.Gender = v
		case FieldEmail:
			u.Email = v
		case FieldPhoneNo:
			u.PhoneNo = v
		}
	}
}

// normalized devolve uma cópia com o dob na forma canônica.
func (u User) normalized() User {
	if u.DOB != "" {
		u.DOB = NormalizeDate(u.DOB)
	}
	return u
}

// CreateRequest é o corpo esperado no POST. A ordem dos campos define a
// ordem da lista de campos ausentes devolvida ao cliente.
type CreateRequest struct {
	Lastname string `json:"lastname" validate:"required"`
	DOB      string `json:"dob" validate:"required,dob"`
	Address  string `json:"address" validate:"required"`
	Gender   string `json:"gender" validate:"required"`
	Email    string `json:"email" validate:"required,loose_email"`
	PhoneNo  string `json:"phone_no" validate:"required,phone10"`
}

// Patch é o corpo do PUT. Campo nil significa "não informado".
type Patch struct {
	Lastname *string `json:"lastname"`
	DOB      *string `json:"dob"`
	Address  *string `json:"address"`
	Gender   *string `json:"gender"`
	Email    *string `json:"email"`
	PhoneNo  *string `json:"phone_no"`
}

func (p *Patch) ref(f Field) **string {
	switch f {
	case FieldLastname:
		return &p.Lastname
	case FieldDOB:
		return &p.DOB
	case FieldAddress:
		return &p.Address
	case FieldGender:
		return &p.Gender
	case FieldEmail:
		return &p.Email
	case FieldPhoneNo:
		return &p.PhoneNo
	}
	return nil
}

// Get informa o valor do campo e se ele foi tocado.
func (p Patch) Get(f Field) (string, bool) {
	ref := p.ref(f)
	if ref == nil || *ref == nil {
		return "", false
	}
	return **ref, true
}

// Set marca o campo como tocado com o valor informado.
func (p *Patch) Set(f Field, v string) {
	if ref := p.ref(f); ref != nil {
		*ref = &v
	}
}

// Touched lista os campos informados, na ordem de Fields.
func (p Patch) Touched() []Field {
	var touched []Field
	for _, f := range Fields {
		if _, ok := p.Get(f); ok {
			touched = append(touched, f)
		}
	}
	return touched
}

// IsEmpty indica que nenhum campo reconhecido foi informado.
func (p Patch) IsEmpty() bool {
	return len(p.Touched()) == 0
}
