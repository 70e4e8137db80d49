// Package catalogxml lee catálogos de vendedores y productos en XML (UTF-8 o ISO-8859-1)
// y los importa a través de los casos de uso.
//
// Formato esperado:
//
//	<catalogo>
//	  <vendedor nombre="Ana" email="ana@x.com" telefono="..." direccion="..." nit="..." activo="true">
//	    <producto nombre="Lámpara" precio="19.90" stock="3" categoria="hogar" imagen="...">Descripción</producto>
//	  </vendedor>
//	</catalogo>
package catalogxml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
)

// SellerEntry un vendedor del catálogo con sus productos (SellerID se asigna al importar).
type SellerEntry struct {
	Seller   dto.SellerRequest
	Products []dto.CreateProductRequest
}

// Read decodifica el catálogo. Los errores de formato indican la posición del elemento.
func Read(r io.Reader) ([]SellerEntry, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("leer XML: %w", err)
	}
	root := doc.SelectElement("catalogo")
	if root == nil {
		return nil, fmt.Errorf("falta el elemento raíz <catalogo>")
	}

	var out []SellerEntry
	for i, el := range root.SelectElements("vendedor") {
		entry, err := readSeller(el)
		if err != nil {
			return nil, fmt.Errorf("vendedor #%d: %w", i+1, err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(charset) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "UTF-8", "":
		return input, nil
	}
	return nil, fmt.Errorf("codificación no soportada: %s", charset)
}

func readSeller(el *etree.Element) (SellerEntry, error) {
	entry := SellerEntry{Seller: dto.SellerRequest{
		Name:    attr(el, "nombre"),
		Email:   attr(el, "email"),
		Phone:   optionalAttr(el, "telefono"),
		Address: optionalAttr(el, "direccion"),
		TaxID:   optionalAttr(el, "nit"),
	}}
	if raw := attr(el, "activo"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return entry, fmt.Errorf("activo=%q no es booleano", raw)
		}
		entry.Seller.Active = &active
	}

	for j, pel := range el.SelectElements("producto") {
		p, err := readProduct(pel)
		if err != nil {
			return entry, fmt.Errorf("producto #%d: %w", j+1, err)
		}
		entry.Products = append(entry.Products, p)
	}
	return entry, nil
}

func readProduct(el *etree.Element) (dto.CreateProductRequest, error) {
	p := dto.CreateProductRequest{
		Name:     attr(el, "nombre"),
		Category: optionalAttr(el, "categoria"),
		ImageURL: optionalAttr(el, "imagen"),
	}
	if desc := strings.TrimSpace(el.Text()); desc != "" {
		p.Description = &desc
	}

	price, err := decimal.NewFromString(attr(el, "precio"))
	if err != nil {
		return p, fmt.Errorf("precio=%q inválido", attr(el, "precio"))
	}
	p.Price = price

	if raw := attr(el, "stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("stock=%q inválido", raw)
		}
		p.Stock = &stock
	}
	return p, nil
}

func attr(el *etree.Element, key string) string {
	return strings.TrimSpace(el.SelectAttrValue(key, ""))
}

func optionalAttr(el *etree.Element, key string) *string {
	if v := attr(el, key); v != "" {
		return &v
	}
	return nil
}
