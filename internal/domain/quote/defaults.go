package quote

const defaultServiceTerms = `Horários de Trabalho
2ª a 6ª feira das 7hs às 17hs, as 6ª-feiras até as 16hs.

Prazo de Início
Em até 10 dias após assinatura da proposta

Execução dos Serviços
Serão executados exclusivamente os serviços descritos e contratados nesta proposta, garantindo total clareza e transparência ao cliente. Qualquer necessidade adicional poderá ser atendida mediante solicitação e aprovação de orçamento complementar.

Encargos e despesas
As despesas de alojamento, alimentação, encargos trabalhistas e seguros de nossa equipe já estão integralmente incluídas no valor proposto.`

func DefaultCompany() Company {
	return Company{
		Name:         "Prema Telhados Arquitetura e Projetos LTDA",
		Contact:      "(11) 4858-04759 | atendimento@prematelhados.com.br",
		Conditions:   "Pagamento: 50% na entrada e 50% na conclusão.",
		ServiceTerms: defaultServiceTerms,
	}
}

// Merge fills the empty fields of c from def.
func (c Company) Merge(def Company) Company {
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.Contact == "" {
		c.Contact = def.Contact
	}
	if c.Conditions == "" {
		c.Conditions = def.Conditions
	}
	if c.ServiceTerms == "" {
		c.ServiceTerms = def.ServiceTerms
	}
	return c
}
