package backend

import (
	"fmt"

	empresaentity "empresas_admin/internal/feature/empresas/domain/entity"
	proveedorentity "empresas_admin/internal/feature/proveedores/domain/entity"
	"empresas_admin/internal/platform/externalapi/backend/dto"
)

func toEmpresa(d dto.Empresa) (empresaentity.Empresa, error) {
	fecha, err := dto.ParseDate(d.FechaCreacion)
	if err != nil {
		return empresaentity.Empresa{}, fmt.Errorf("empresa %d: %w", d.IDEmpresa, err)
	}
	return empresaentity.Empresa{
		ID:                d.IDEmpresa,
		Nombre:            d.Nombre,
		Descripcion:       d.Descripcion,
		FechaCreacion:     fecha,
		Activa:            d.Activa,
		Facturacion:       d.Facturacion.Decimal,
		PorcentajeEnBolsa: d.PorcentajeEnBolsa.Decimal,
	}, nil
}

func toEmpresas(in []dto.Empresa) ([]empresaentity.Empresa, error) {
	out := make([]empresaentity.Empresa, 0, len(in))
	for _, d := range in {
		e, err := toEmpresa(d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func fromEmpresa(e empresaentity.Empresa) dto.Empresa {
	return dto.Empresa{
		IDEmpresa:         e.ID,
		Nombre:            e.Nombre,
		Descripcion:       e.Descripcion,
		FechaCreacion:     dto.FormatDate(e.FechaCreacion),
		Activa:            e.Activa,
		Facturacion:       dto.NewNumber(e.Facturacion),
		PorcentajeEnBolsa: dto.NewNumber(e.PorcentajeEnBolsa),
	}
}

func toProveedor(d dto.Proveedor) (proveedorentity.Proveedor, error) {
	fecha, err := dto.ParseDate(d.FechaCreacion)
	if err != nil {
		return proveedorentity.Proveedor{}, fmt.Errorf("proveedor %d: %w", d.IDProveedor, err)
	}
	p := proveedorentity.Proveedor{
		ID:            d.IDProveedor,
		Nombre:        d.Nombre,
		FechaCreacion: fecha,
		Activa:        d.Activa,
		Recurso:       d.Recurso,
		Cantidad:      d.Cantidad.Decimal,
		Facturacion:   d.Facturacion.Decimal,
		EmpresaID:     d.EmpresaIDEmpresa,
	}
	if d.Empresa != nil {
		p.Empresa = &proveedorentity.EmpresaRef{ID: d.Empresa.IDEmpresa, Nombre: d.Empresa.Nombre}
	}
	return p, nil
}

func toProveedores(in []dto.Proveedor) ([]proveedorentity.Proveedor, error) {
	out := make([]proveedorentity.Proveedor, 0, len(in))
	for _, d := range in {
		p, err := toProveedor(d)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// fromProveedor は書き込み用DTOを作ります。結合された会社は送信しません。
func fromProveedor(p proveedorentity.Proveedor) dto.Proveedor {
	return dto.Proveedor{
		IDProveedor:      p.ID,
		Nombre:           p.Nombre,
		FechaCreacion:    dto.FormatDate(p.FechaCreacion),
		Activa:           p.Activa,
		Recurso:          p.Recurso,
		Cantidad:         dto.NewNumber(p.Cantidad),
		Facturacion:      dto.NewNumber(p.Facturacion),
		EmpresaIDEmpresa: p.EmpresaID,
	}
}
