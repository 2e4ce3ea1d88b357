package handler

import (
	"empresas_admin/internal/feature/devbackend/domain/entity"
	"empresas_admin/internal/platform/externalapi/backend/dto"
)

func toEmpresaDTO(e entity.Empresa) dto.Empresa {
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

func toEmpresaDTOs(rows []entity.Empresa) []dto.Empresa {
	out := make([]dto.Empresa, 0, len(rows))
	for _, e := range rows {
		out = append(out, toEmpresaDTO(e))
	}
	return out
}

func fromEmpresaDTO(d dto.Empresa) (entity.Empresa, error) {
	fecha, err := dto.ParseDate(d.FechaCreacion)
	if err != nil {
		return entity.Empresa{}, err
	}
	return entity.Empresa{
		ID:                d.IDEmpresa,
		Nombre:            d.Nombre,
		Descripcion:       d.Descripcion,
		FechaCreacion:     fecha,
		Activa:            d.Activa,
		Facturacion:       d.Facturacion.Decimal,
		PorcentajeEnBolsa: d.PorcentajeEnBolsa.Decimal,
	}, nil
}

func toProveedorDTO(p entity.Proveedor) dto.Proveedor {
	out := dto.Proveedor{
		IDProveedor:      p.ID,
		Nombre:           p.Nombre,
		FechaCreacion:    dto.FormatDate(p.FechaCreacion),
		Activa:           p.Activa,
		Recurso:          p.Recurso,
		Cantidad:         dto.NewNumber(p.Cantidad),
		Facturacion:      dto.NewNumber(p.Facturacion),
		EmpresaIDEmpresa: p.EmpresaIDEmpresa,
	}
	if p.Empresa != nil {
		e := toEmpresaDTO(*p.Empresa)
		out.Empresa = &e
	}
	return out
}

func toProveedorDTOs(rows []entity.Proveedor) []dto.Proveedor {
	out := make([]dto.Proveedor, 0, len(rows))
	for _, p := range rows {
		out = append(out, toProveedorDTO(p))
	}
	return out
}

func fromProveedorDTO(d dto.Proveedor) (entity.Proveedor, error) {
	fecha, err := dto.ParseDate(d.FechaCreacion)
	if err != nil {
		return entity.Proveedor{}, err
	}
	return entity.Proveedor{
		ID:               d.IDProveedor,
		Nombre:           d.Nombre,
		FechaCreacion:    fecha,
		Activa:           d.Activa,
		Recurso:          d.Recurso,
		Cantidad:         d.Cantidad.Decimal,
		Facturacion:      d.Facturacion.Decimal,
		EmpresaIDEmpresa: d.EmpresaIDEmpresa,
	}, nil
}
