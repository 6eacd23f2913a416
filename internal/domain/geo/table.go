package geo

// RioCenter is the initial map position (Centro, Rio de Janeiro).
var RioCenter = Point{Lat: -22.9068, Lon: -43.1729}

// RioNeighbourhoods is the reference coordinate of every neighbourhood the
// predictor knows about. Coordinates are approximate centroids.
var RioNeighbourhoods = []Neighbourhood{
	{Name: "Copacabana", Point: Point{Lat: -22.9711, Lon: -43.1822}},
	{Name: "Ipanema", Point: Point{Lat: -22.9838, Lon: -43.2044}},
	{Name: "Leblon", Point: Point{Lat: -22.9847, Lon: -43.2233}},
	{Name: "Leme", Point: Point{Lat: -22.9630, Lon: -43.1710}},
	{Name: "Botafogo", Point: Point{Lat: -22.9519, Lon: -43.1839}},
	{Name: "Flamengo", Point: Point{Lat: -22.9329, Lon: -43.1753}},
	{Name: "Urca", Point: Point{Lat: -22.9485, Lon: -43.1620}},
	{Name: "Humaitá", Point: Point{Lat: -22.9550, Lon: -43.1990}},
	{Name: "Lagoa", Point: Point{Lat: -22.9711, Lon: -43.2120}},
	{Name: "Jardim Botânico", Point: Point{Lat: -22.9667, Lon: -43.2231}},
	{Name: "Gávea", Point: Point{Lat: -22.9794, Lon: -43.2320}},
	{Name: "São Conrado", Point: Point{Lat: -22.9994, Lon: -43.2656}},
	{Name: "Joá", Point: Point{Lat: -23.0110, Lon: -43.2860}},
	{Name: "Itanhangá", Point: Point{Lat: -22.9900, Lon: -43.3050}},
	{Name: "Barra da Tijuca", Point: Point{Lat: -23.0004, Lon: -43.3659}},
	{Name: "Recreio dos Bandeirantes", Point: Point{Lat: -23.0180, Lon: -43.4650}},
	{Name: "Camorim", Point: Point{Lat: -22.9890, Lon: -43.4230}},
	{Name: "Vargem Pequena", Point: Point{Lat: -22.9950, Lon: -43.4580}},
	{Name: "Vargem Grande", Point: Point{Lat: -22.9820, Lon: -43.4940}},
	{Name: "Grumari", Point: Point{Lat: -23.0450, Lon: -43.5260}},
	{Name: "Guaratiba", Point: Point{Lat: -23.0530, Lon: -43.5720}},
	{Name: "Jacarepaguá", Point: Point{Lat: -22.9650, Lon: -43.3900}},
	{Name: "Freguesia (Jacarepaguá)", Point: Point{Lat: -22.9400, Lon: -43.3430}},
	{Name: "Anil", Point: Point{Lat: -22.9480, Lon: -43.3370}},
	{Name: "Pechincha", Point: Point{Lat: -22.9310, Lon: -43.3550}},
	{Name: "Tanque", Point: Point{Lat: -22.9170, Lon: -43.3600}},
	{Name: "Centro", Point: Point{Lat: -22.9035, Lon: -43.1790}},
	{Name: "Glória", Point: Point{Lat: -22.9219, Lon: -43.1760}},
	{Name: "Catete", Point: Point{Lat: -22.9260, Lon: -43.1775}},
	{Name: "Laranjeiras", Point: Point{Lat: -22.9370, Lon: -43.1870}},
	{Name: "Cosme Velho", Point: Point{Lat: -22.9440, Lon: -43.1990}},
	{Name: "Santa Teresa", Point: Point{Lat: -22.9213, Lon: -43.1886}},
	{Name: "Rio Comprido", Point: Point{Lat: -22.9280, Lon: -43.2090}},
	{Name: "Santo Cristo", Point: Point{Lat: -22.8970, Lon: -43.2040}},
	{Name: "Gamboa", Point: Point{Lat: -22.8980, Lon: -43.1960}},
	{Name: "Saúde", Point: Point{Lat: -22.8960, Lon: -43.1860}},
	{Name: "São Cristóvão", Point: Point{Lat: -22.8990, Lon: -43.2220}},
	{Name: "Tijuca", Point: Point{Lat: -22.9250, Lon: -43.2390}},
	{Name: "Maracanã", Point: Point{Lat: -22.9120, Lon: -43.2300}},
	{Name: "Vila Isabel", Point: Point{Lat: -22.9160, Lon: -43.2460}},
	{Name: "Méier", Point: Point{Lat: -22.9020, Lon: -43.2790}},
	{Name: "Madureira", Point: Point{Lat: -22.8720, Lon: -43.3370}},
	{Name: "Penha", Point: Point{Lat: -22.8420, Lon: -43.2770}},
	{Name: "Jardim Guanabara", Point: Point{Lat: -22.8130, Lon: -43.2020}},
	{Name: "Paquetá", Point: Point{Lat: -22.7620, Lon: -43.1080}},
	{Name: "Bangu", Point: Point{Lat: -22.8750, Lon: -43.4650}},
	{Name: "Campo Grande", Point: Point{Lat: -22.9030, Lon: -43.5590}},
}
