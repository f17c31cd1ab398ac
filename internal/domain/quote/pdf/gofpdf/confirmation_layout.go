package gofpdf

import (
	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/layout"
)

// rentalTerms are printed on every booking confirmation.
var rentalTerms = []string{
	"• Espaço necessário: área plana e limpa com a dimensão dos brinquedos",
	"• Acesso para veículos: caso for necessário, informe previamente",
	"• Em caso de chuva durante o evento, os brinquedos infláveis e eletrônicos deverão ser realocados para área coberta ou, se não for possível, serão desinflados/desmontados para evitar danos",
	"• Pagamento: 50% no agendamento, 50% na entrega dos brinquedos",
	"• Cancelamentos: não há reembolso, apenas remarcação conforme disponibilidade de agenda.",
	"• Horário de montagem: 1 hora antes do início do evento",
	"• Nossos brinquedos incluem extensão de 10m. Para distâncias maiores, favor informar antecipadamente para nos organizarmos.",
}

const infoPitch = 10.0

func (c *canvas) drawConfirmation(doc quote.Document) {
	issued := c.issued(doc)
	c.drawHeader("CONFIRMAÇÃO DE AGENDAMENTO", 14, headerBandH+30-titleCardH, [2]string{
		"Data de emissão: " + issued.Format("02/01/2006"),
		"Documento de confirmação",
	})

	c.y = 115
	c.section("DADOS DO CLIENTE", c.pal.Dark)
	c.infoLines(9,
		"Nome: "+orDash(doc.Client.Name),
		"Telefone: "+orDash(doc.Client.Phone),
	)
	c.y += 10

	c.section("DADOS DO EVENTO", c.pal.Dark)
	c.infoLines(9,
		"Tipo: "+doc.Event.Type,
		"Endereço: "+doc.Event.Address,
		"Data: "+doc.Event.Date,
		"Horário do evento: "+doc.Event.StartTime,
		"Montagem prevista: "+doc.Event.AssemblyTime+" (1h antes do início)",
		"Desmontagem prevista: "+doc.Event.DisassemblyTime,
	)
	c.y += 10

	c.ensure(12+tableHeaderH+rowMinH, tableBottomLimit)
	c.section("BRINQUEDOS CONTRATADOS", c.pal.Dark)
	t := table{
		headers: []string{"BRINQUEDO", "QTD", "PERÍODO"},
		widths:  []float64{0.70, 0.15, 0.15},
	}
	for _, l := range doc.Lines {
		t.rows = append(t.rows, []string{l.Description, quote.FormatQuantity(l.Quantity), l.Period})
	}
	c.drawTable(t)

	c.y += 15
	c.ensure(12+infoPitch, infoBottomLimit)
	c.section("INFORMAÇÕES IMPORTANTES", c.pal.Primary)
	c.ink(c.pal.Dark)
	c.font("", 8)
	for _, info := range rentalTerms {
		for _, l := range layout.Lines(layout.Wrap(info, c.contentWidth()-5*mm, c.width)) {
			if c.y > c.h-infoBottomLimit {
				c.newPage()
			}
			c.text(marginX+5*mm, c.y, l)
			c.y += infoPitch
		}
		c.y += 2
	}

	c.y += 10
	c.ensure(12+3*infoPitch, infoBottomLimit)
	c.section("INFORMAÇÕES DE PAGAMENTO", c.pal.Primary)
	payment := []string{"Valor total: " + doc.TotalLine().Value}
	for _, l := range doc.PaymentLines() {
		payment = append(payment, l.Label+" "+l.Value)
	}
	c.infoLines(9, payment...)

	c.y += 10
	c.ensure(12+2*infoPitch, infoBottomLimit)
	c.section("CONTATO EM CASO DE DÚVIDAS", c.pal.Primary)
	contact := []string{"WhatsApp: " + orDefault(c.rc.Brand.WhatsApp, "Contato não informado")}
	if c.rc.Brand.Instagram != "" {
		contact = append(contact, "Instagram: "+c.rc.Brand.Instagram)
	}
	c.infoLines(9, contact...)

	c.drawFooter(c.rc.Brand.Caption("Confirmação #" + c.rc.Clock().Format("20060102")))
}

// infoLines writes plain lines at the cursor, breaking pages as needed.
func (c *canvas) infoLines(size float64, lines ...string) {
	c.ink(c.pal.Dark)
	c.font("", size)
	for _, l := range lines {
		if c.y > c.h-infoBottomLimit {
			c.newPage()
		}
		c.text(marginX, c.y, l)
		c.y += infoPitch
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
