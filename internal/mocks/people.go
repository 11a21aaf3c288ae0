// Package mocks generates realistic sample data for local development and
// demos. Generators are pure given their *rand.Rand: same seed, same data.
// They respect the same business rules the services enforce, so their output
// survives validation when inserted through the service layer.
package mocks

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

var firstNames = []string{
	"María", "José", "Carlos", "Ana", "Luis", "Laura", "Juan", "Carmen",
	"Pedro", "Sofía", "Miguel", "Isabella", "Fernando", "Valentina",
	"Ricardo", "Camila", "Andrés", "Mariana", "Diego", "Alejandra",
	"Roberto", "Daniela", "Jorge", "Natalia", "Alejandro", "Paola",
	"Sergio", "Andrea", "Felipe", "Diana", "Mauricio", "Carolina",
}

var lastNames = []string{
	"García", "Rodríguez", "González", "Fernández", "López", "Martínez",
	"Sánchez", "Pérez", "Gómez", "Martín", "Jiménez", "Ruiz", "Hernández",
	"Díaz", "Moreno", "Muñoz", "Álvarez", "Romero", "Alonso", "Gutiérrez",
	"Navarro", "Torres", "Domínguez", "Vázquez", "Ramos", "Gil", "Ramírez",
}

var companies = []string{
	"Constructora ABC S.A.S.", "Comercial XYZ Ltda.", "Servicios Generales S.A.",
	"Inversiones Delta S.A.S.", "Tecnología Avanzada S.A.", "Distribuidora Norte S.A.S.",
	"Importaciones Sur Ltda.", "Exportaciones Este S.A.", "Logística Integral S.A.S.",
	"Consultoría Empresarial S.A.", "Manufacturas del Valle S.A.S.", "Agroindustria S.A.",
}

// People generates count people with unique document numbers. Roughly 60%
// are natural persons with a cédula, the rest companies with a NIT.
func People(r *rand.Rand, count int) []domain.Person {
	people := make([]domain.Person, 0, count)
	used := map[string]bool{}

	for i := 0; i < count; i++ {
		var p domain.Person
		p.ID = uuid.NewString()

		if i%10 < 6 {
			p.DocumentType = "Cédula"
			p.Name = fmt.Sprintf("%s %s %s",
				firstNames[r.Intn(len(firstNames))],
				lastNames[r.Intn(len(lastNames))],
				lastNames[r.Intn(len(lastNames))])
			for {
				p.Document = fmt.Sprintf("%d", 10_000_000+r.Intn(990_000_000))
				if !used[p.Document] {
					break
				}
			}
		} else {
			p.DocumentType = "NIT"
			p.Name = companies[r.Intn(len(companies))]
			for {
				p.Document = fmt.Sprintf("%d", 100_000_000+r.Intn(900_000_000))
				if !used[p.Document] {
					break
				}
			}
		}
		used[p.Document] = true
		people = append(people, p)
	}
	return people
}
